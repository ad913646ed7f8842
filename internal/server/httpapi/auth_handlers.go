package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/google/uuid"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	token, user, err := s.users.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusBadRequest, "email already registered")
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	token, user, err := s.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.logger.Error(r.Context(), "signin failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := s.subject(w, r)
	if !ok {
		return
	}

	user, err := s.users.Profile(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		s.logger.Error(r.Context(), "profile lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, userPayload{ID: user.ID, Email: user.Email})
}

// subject pulls the verified subject id out of the request context and
// validates its shape. Token-format and identity-format problems are kept
// separate on purpose: the middleware only guarantees a verified non-empty
// subject claim, this check guarantees it is a UUID.
func (s *Server) subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	subjectID, ok := SubjectID(r)
	if !ok {
		s.unauthorized(w, r, "no subject in context")
		return "", false
	}
	if _, err := uuid.Parse(subjectID); err != nil {
		s.unauthorized(w, r, common.ErrorInvalidIdentity.Error())
		return "", false
	}
	return subjectID, true
}
