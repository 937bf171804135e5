package repository

import (
	"context"
	"time"

	"github.com/shrey-c/BookRecommender/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, email, passwordHash string, age *int64, location *string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	SetAuthenticated(ctx context.Context, email string, authenticated bool) error
}

// BookRepositoryI defines operations on Book entities.
type BookRepositoryI interface {
	Create(ctx context.Context, b *models.Book) error
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	List(ctx context.Context, limit, offset int) ([]models.Book, error)
	Delete(ctx context.Context, isbn string) error
	Count(ctx context.Context) (int64, error)
}

// IssueParams carries the inputs for issuing a book. Zero-valued IssueDate
// defaults to now; zero-valued DueDate defaults to IssueDate plus the loan
// period; empty BookName defaults to the book's catalog title.
type IssueParams struct {
	Email     string
	ISBN      string
	BookName  string
	IssueDate time.Time
	DueDate   time.Time
}

// ListTransactionsParams filters and pages the transaction list.
type ListTransactionsParams struct {
	Email  string // exact borrower email filter; empty means all
	Limit  int
	Offset int
}

// TransactionRepositoryI is the lending ledger: it creates loan records and
// flips their returned flag. Transactions are never deleted.
type TransactionRepositoryI interface {
	Issue(ctx context.Context, p IssueParams) (*models.Transaction, error)
	MarkReturned(ctx context.Context, id int64) (*models.Transaction, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	List(ctx context.Context, p ListTransactionsParams) ([]models.Transaction, error)
	ListPending(ctx context.Context) ([]models.Transaction, error)
	CountPending(ctx context.Context) (int64, error)
}

// RatingRepositoryI defines operations on Rating entities.
type RatingRepositoryI interface {
	Upsert(ctx context.Context, uid int64, isbn string, rating int64) error
	GetByKey(ctx context.Context, uid int64, isbn string) (*models.Rating, error)
}
