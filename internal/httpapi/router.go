package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/shrey-c/BookRecommender/internal/metrics"
)

// Routes builds the chi router. The admin gate wraps every mutating admin
// route uniformly; no handler carries its own access predicate.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.recordMetrics)

	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Public catalog reads.
		r.Get("/books", s.handleListBooks)
		r.Get("/books/{isbn}", s.handleGetBook)

		// Authenticated user surface.
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Post("/auth/logout", s.handleLogout)
			r.Put("/books/{isbn}/rating", s.handleRateBook)

			r.Get("/recommendations/most-rated", s.handleMostRated)
			r.Get("/recommendations/top-average-rated", s.handleTopAverageRated)
			r.Get("/recommendations/top-rated", s.handleTopRated)
			r.Get("/recommendations/top-rated-isbns", s.handleTopRatedISBNs)
			r.Get("/recommendations/random", s.handleRandom)
		})

		// Librarian admin panel.
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Use(s.requireAdmin)

			r.Get("/users", s.handleListUsers)
			r.Post("/users", s.handleCreateUser)

			r.Post("/books", s.handleCreateBook)
			r.Delete("/books/{isbn}", s.handleDeleteBook)

			// The ledger has no delete route: transactions are an
			// immutable audit trail.
			r.Post("/transactions", s.handleIssue)
			r.Get("/transactions", s.handleListTransactions)
			r.Get("/transactions/pending", s.handleListPending)
			r.Patch("/transactions/{id}/return", s.handleMarkReturned)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
