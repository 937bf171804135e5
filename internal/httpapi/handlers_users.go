package httpapi

import (
	"net/http"
	"strconv"

	"github.com/shrey-c/BookRecommender/internal/auth"
	"github.com/shrey-c/BookRecommender/internal/logging"
)

// userView is the only shape user rows ever take on the wire. Password hash,
// age, location and the authenticated flag are restricted columns and never
// serialize through any read path.
type userView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	users, err := s.users.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{ID: u.ID, Email: u.Email})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateUser is the librarian's user-creation form: it hashes the
// submitted password before the row is written, like any registration.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := s.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := s.users.Create(r.Context(), req.Email, hash, nil, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Info().Str("email", u.Email).Msg("user created by admin")
	writeJSON(w, http.StatusCreated, userView{ID: u.ID, Email: u.Email})
}
