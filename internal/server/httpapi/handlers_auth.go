package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/dmitrijs2005/placeholder/internal/server/models"
	"github.com/dmitrijs2005/placeholder/internal/server/services"
)

var (
	errUsernameTaken = errors.New("Username is already taken!")
	errEmailTaken    = errors.New("Email is already in use!")
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, common.ErrInvalidCredentials)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// userRequest is the body of registration, user creation and user update.
type userRequest struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Address  models.Address `json:"address"`
	Phone    string         `json:"phone"`
	Website  string         `json:"website"`
	Company  models.Company `json:"company"`
	Password string         `json:"password"`
}

// handleRegister serves POST /api/auth/register and, behind
// RequireAuthenticated, POST /api/users.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	user, err := s.users.Register(r.Context(), services.Registration{
		Name:     req.Name,
		UserName: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Website:  req.Website,
		Address:  req.Address,
		Company:  req.Company,
		Password: req.Password,
	})
	if s.writeChangeError(w, r, "register failed", err) {
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// writeChangeError maps errors of the user-changing operations to a
// response. It reports whether one was written.
func (s *Server) writeChangeError(w http.ResponseWriter, r *http.Request, msg string, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, services.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, errUsernameTaken)
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, errEmailTaken)
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, errNotFound)
	default:
		s.logger.Error(r.Context(), msg, "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
	}
	return true
}
