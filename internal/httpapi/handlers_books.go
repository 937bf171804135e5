package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shrey-c/BookRecommender/internal/auth"
	"github.com/shrey-c/BookRecommender/models"
)

type createBookRequest struct {
	ISBN      string `json:"isbn" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author"`
	YearOfPub uint   `json:"year_of_pub"`
	Publisher string `json:"publisher"`
	ImgURLS   string `json:"img_url_s"`
	ImgURLM   string `json:"img_url_m"`
	ImgURLL   string `json:"img_url_l"`
}

// bookListItem is the catalog list view: image URLs are excluded there and
// only appear on the single-book read.
type bookListItem struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	YearOfPub uint   `json:"year_of_pub"`
	Publisher string `json:"publisher"`
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	books, err := s.books.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]bookListItem, 0, len(books))
	for _, b := range books {
		out = append(out, bookListItem{
			ISBN: b.ISBN, Title: b.Title, Author: b.Author,
			YearOfPub: b.YearOfPub, Publisher: b.Publisher,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")
	b, err := s.books.GetByISBN(r.Context(), isbn)
	if err != nil {
		writeError(w, err)
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "book not found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := s.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	b := &models.Book{
		ISBN: req.ISBN, Title: req.Title, Author: req.Author,
		YearOfPub: req.YearOfPub, Publisher: req.Publisher,
		ImgURLS: req.ImgURLS, ImgURLM: req.ImgURLM, ImgURLL: req.ImgURLL,
	}
	if err := s.books.Create(r.Context(), b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.books.Delete(r.Context(), chi.URLParam(r, "isbn")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type rateBookRequest struct {
	Rating *int64 `json:"rating" validate:"required"`
}

// handleRateBook upserts the caller's rating for a book, keyed by
// (user id, isbn).
func (s *Server) handleRateBook(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	var req rateBookRequest
	if err := s.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	u, err := s.users.GetByEmail(r.Context(), p.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if u == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unknown account"})
		return
	}
	isbn := chi.URLParam(r, "isbn")
	if err := s.ratings.Upsert(r.Context(), u.ID, isbn, *req.Rating); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Rating{UID: u.ID, ISBN: isbn, Rating: *req.Rating})
}
