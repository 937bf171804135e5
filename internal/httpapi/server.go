// Package httpapi is the JSON HTTP surface: public catalog reads, user
// sessions, the librarian admin panel, and the recommendation endpoints.
package httpapi

import (
	"database/sql"

	"github.com/go-playground/validator/v10"

	"github.com/shrey-c/BookRecommender/internal/auth"
	"github.com/shrey-c/BookRecommender/internal/config"
	"github.com/shrey-c/BookRecommender/internal/recommend"
	"github.com/shrey-c/BookRecommender/repository"
)

// Server bundles the repositories and policy behind the HTTP handlers. All
// dependencies are injected; there is no package-level database handle.
type Server struct {
	cfg          *config.Config
	policy       auth.Policy
	users        *repository.UserRepository
	books        *repository.BookRepository
	transactions *repository.TransactionRepository
	ratings      *repository.RatingRepository
	recommender  *recommend.Recommender
	validate     *validator.Validate
}

// NewServer wires a Server from an open database handle.
func NewServer(cfg *config.Config, d *sql.DB) *Server {
	return &Server{
		cfg:          cfg,
		policy:       auth.Policy{AdminEmail: cfg.Auth.AdminEmail},
		users:        repository.NewUserRepository(d),
		books:        repository.NewBookRepository(d),
		transactions: repository.NewTransactionRepository(d),
		ratings:      repository.NewRatingRepository(d),
		recommender:  recommend.New(d),
		validate:     validator.New(),
	}
}
