package httpapi

import (
	"net/http"
	"time"

	"github.com/shrey-c/BookRecommender/internal/auth"
	"github.com/shrey-c/BookRecommender/internal/logging"
)

// sessionTTL bounds how long a login token stays valid.
const sessionTTL = 24 * time.Hour

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Age      *int64  `json:"age,omitempty" validate:"omitempty,gte=0"`
	Location *string `json:"location,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := s.users.Create(r.Context(), req.Email, hash, req.Age, req.Location)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Info().Str("email", u.Email).Msg("user registered")
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	u, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	// Identical response for unknown email and bad password.
	if u == nil || !auth.CheckPassword(req.Password, u.Password) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}
	if err := s.users.SetAuthenticated(r.Context(), u.Email, true); err != nil {
		writeError(w, err)
		return
	}
	token, err := auth.IssueToken(s.cfg.Auth.JWTSecret, u.Email, sessionTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	if p == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	if err := s.users.SetAuthenticated(r.Context(), p.Email, false); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
