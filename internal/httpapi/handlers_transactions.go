package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shrey-c/BookRecommender/internal/logging"
	"github.com/shrey-c/BookRecommender/internal/metrics"
	"github.com/shrey-c/BookRecommender/models"
	"github.com/shrey-c/BookRecommender/repository"
)

type issueRequest struct {
	Email     string     `json:"email" validate:"required,email"`
	ISBN      string     `json:"isbn" validate:"required"`
	BookName  string     `json:"book_name"`
	IssueDate *time.Time `json:"issue_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

func (s *Server) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := s.decodeValid(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	p := repository.IssueParams{Email: req.Email, ISBN: req.ISBN, BookName: req.BookName}
	if req.IssueDate != nil {
		p.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		p.DueDate = *req.DueDate
	}
	tr, err := s.transactions.Issue(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.LoansIssuedTotal.Inc()
	logging.Info().Str("email", tr.Email).Str("isbn", tr.ISBN).Int64("id", tr.ID).Msg("book issued")
	writeJSON(w, http.StatusCreated, tr)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	list, err := s.transactions.List(r.Context(), repository.ListTransactionsParams{
		Email:  q.Get("email"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, list)
}

type pendingResponse struct {
	Count        int64                `json:"count"`
	Transactions []models.Transaction `json:"transactions"`
}

// handleListPending is the librarian's pending view: every loan not yet
// returned, plus the aggregate count shown in the panel header.
func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	list, err := s.transactions.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	count, err := s.transactions.CountPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, pendingResponse{Count: count, Transactions: list})
}

func (s *Server) handleMarkReturned(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid transaction id"})
		return
	}
	tr, err := s.transactions.MarkReturned(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.LoansReturnedTotal.Inc()
	logging.Info().Int64("id", tr.ID).Msg("book returned")
	writeJSON(w, http.StatusOK, tr)
}
