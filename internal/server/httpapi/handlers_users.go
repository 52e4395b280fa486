package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
	"github.com/dmitrijs2005/placeholder/internal/server/models"
	"github.com/dmitrijs2005/placeholder/internal/server/services"
)

// userResponse is the public view of a user. The password hash is never
// serialized.
type userResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Address   models.Address `json:"address"`
	Phone     string         `json:"phone,omitempty"`
	Website   string         `json:"website,omitempty"`
	Company   models.Company `json:"company"`
	CreatedAt time.Time      `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.UserName,
		Email:     u.Email,
		Address:   u.Address,
		Phone:     u.Phone,
		Website:   u.Website,
		Company:   u.Company,
		CreatedAt: u.CreatedAt,
	}
}

func (s *Server) writeUserResult(w http.ResponseWriter, r *http.Request, u *models.User, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, errNotFound)
	case err != nil:
		s.logger.Error(r.Context(), "user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
	default:
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	u, err := s.users.GetByUsername(r.Context(), p.Username)
	s.writeUserResult(w, r, u, err)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByID(r.Context(), r.PathValue("id"))
	s.writeUserResult(w, r, u, err)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "user list failed", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	user, err := s.users.Update(r.Context(), r.PathValue("id"), services.UserUpdate{
		Name:     req.Name,
		UserName: req.Username,
		Email:    req.Email,
		Address:  req.Address,
		Phone:    req.Phone,
		Website:  req.Website,
		Company:  req.Company,
		Password: req.Password,
	})
	if s.writeChangeError(w, r, "user update failed", err) {
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if s.writeChangeError(w, r, "user delete failed", s.users.Delete(r.Context(), r.PathValue("id"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
