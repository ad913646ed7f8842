package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/dmitrijs2005/tasklist/internal/server/auth"
	"github.com/dmitrijs2005/tasklist/internal/server/config"
	"github.com/dmitrijs2005/tasklist/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return common.ErrorAlreadyExists
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func newUserService(repo *fakeUsersRepo) *UserService {
	cfg := &config.Config{
		SecretKey:                   "0123456789abcdef0123456789abcdef",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(repo, cfg)
}

// --- tests ---

func TestSignUp_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newUserService(repo)

	token, user, err := svc.SignUp(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "password1", user.PasswordHash)

	claims, err := auth.ParseToken(token, []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
}

func TestSignUp_LongestAcceptedPassword(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	// 128 chars is the upper bound; it exceeds bcrypt's raw 72-byte input
	// limit and must still sign up and sign back in.
	password := strings.Repeat("p", 128)

	_, user, err := svc.SignUp(ctx, "a@x.com", password, "")
	require.NoError(t, err)
	require.NotNil(t, user)

	_, signedIn, err := svc.SignIn(ctx, "a@x.com", password)
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newUserService(repo)

	_, _, err := svc.SignUp(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), "a@x.com", "password2", "")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSignUp_Validation(t *testing.T) {
	svc := newUserService(newFakeUsersRepo())
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"not an email", "not-an-email", "password1", ""},
		{"email too short", "a@b", "password1", ""},
		{"email too long", strings.Repeat("a", 250) + "@example.com", "password1", ""},
		{"password too short", "a@x.com", "short", ""},
		{"password too long", "a@x.com", strings.Repeat("p", 129), ""},
		{"name too long", "a@x.com", "password1", strings.Repeat("n", 256)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.SignUp(ctx, tc.email, tc.password, tc.userName)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestSignIn_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, created, err := svc.SignUp(ctx, "a@x.com", "password1", "")
	require.NoError(t, err)

	token, user, err := svc.SignIn(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestSignIn_UniformError(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "a@x.com", "password1", "")
	require.NoError(t, err)

	_, _, errWrongPassword := svc.SignIn(ctx, "a@x.com", "wrong-password")
	_, _, errUnknownEmail := svc.SignIn(ctx, "nobody@x.com", "password1")

	// unknown email and wrong password must be indistinguishable
	require.ErrorIs(t, errWrongPassword, common.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, common.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestProfile(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, created, err := svc.SignUp(ctx, "a@x.com", "password1", "")
	require.NoError(t, err)

	user, err := svc.Profile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.Profile(ctx, "missing-id")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
