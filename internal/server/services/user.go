// Package services contains server-side business logic. This file implements
// UserService, which handles signup, signin, and profile lookup, issuing
// bearer tokens on success.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/auth"
	"github.com/dmitrijs2005/tasklist/internal/server/config"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/users"
	"github.com/google/uuid"
)

const (
	minEmailLength    = 5
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNameLength     = 255
)

// UserService provides authentication-related operations:
// - SignUp: create an account and mint a token
// - SignIn: verify credentials and mint a token
// - Profile: look up the authenticated user's summary
type UserService struct {
	repo                        users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the users repository and
// server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// SignUp creates a new user and returns a signed token together with the
// created record. A duplicate email yields common.ErrorAlreadyExists; the
// uniqueness itself is guaranteed by the users table unique index, so
// concurrent duplicate signups cannot both succeed.
func (s *UserService) SignUp(ctx context.Context, email, password, name string) (string, *models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", nil, err
	}
	if len(name) > maxNameLength {
		return "", nil, fmt.Errorf("%w: name must be at most %d characters", common.ErrorValidation, maxNameLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", nil, common.ErrorAlreadyExists
		}
		return "", nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// SignIn verifies the credentials and returns a fresh token. A missing user
// and a wrong password both yield common.ErrInvalidCredentials so callers
// cannot probe which emails are registered.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// Profile returns the user record for a subject id taken from a verified
// token. common.ErrorNotFound only occurs if the account vanished out of
// band.
func (s *UserService) Profile(ctx context.Context, subjectID string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func validateCredentials(email, password string) error {
	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf("%w: email must be %d-%d characters", common.ErrorValidation, minEmailLength, maxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d characters", common.ErrorValidation, minPasswordLength, maxPasswordLength)
	}
	return nil
}
