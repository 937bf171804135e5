package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shrey-c/BookRecommender/models"
)

// listN parses the ?n= query parameter; zero lets the engine apply its
// default list length.
func listN(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	return n
}

func (s *Server) serveBookList(w http.ResponseWriter, r *http.Request,
	query func(context.Context, int) ([]models.Book, error)) {
	books, err := query(r.Context(), listN(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleMostRated(w http.ResponseWriter, r *http.Request) {
	s.serveBookList(w, r, s.recommender.MostRated)
}

func (s *Server) handleTopAverageRated(w http.ResponseWriter, r *http.Request) {
	s.serveBookList(w, r, s.recommender.TopAverageRated)
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	s.serveBookList(w, r, s.recommender.TopRated)
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	s.serveBookList(w, r, s.recommender.Random)
}

func (s *Server) handleTopRatedISBNs(w http.ResponseWriter, r *http.Request) {
	isbns, err := s.recommender.TopRatedISBNs(r.Context(), listN(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if isbns == nil {
		isbns = []string{}
	}
	writeJSON(w, http.StatusOK, isbns)
}
