package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shrey-c/BookRecommender/models"
)

// LoanPeriod is the default lending window: due date = issue date + 7 days
// unless the caller overrides it at issue time.
const LoanPeriod = 7 * 24 * time.Hour

// TransactionRepository is the lending ledger. Issue and MarkReturned each
// run inside a single SQL transaction so a loan record is never half-written
// under concurrent requests.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, email, isbn, book_name, issue_date, due_date, returned`

// Issue records a new loan. The borrower email and ISBN must already exist;
// otherwise ErrReferential is returned. Duplicate simultaneous loans of the
// same ISBN by the same user are allowed (the schema has never constrained
// them).
func (r *TransactionRepository) Issue(ctx context.Context, p IssueParams) (*models.Transaction, error) {
	if p.Email == "" || p.ISBN == "" {
		return nil, errors.New("email and isbn are required")
	}
	issueDate := p.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now().UTC()
	}
	dueDate := p.DueDate
	if dueDate.IsZero() {
		dueDate = issueDate.Add(LoanPeriod)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, p.Email).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %q", ErrReferential, p.Email)
	} else if err != nil {
		return nil, err
	}

	var title string
	err = tx.QueryRowContext(ctx, `SELECT title FROM books WHERE isbn = ?`, p.ISBN).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: book %q", ErrReferential, p.ISBN)
	} else if err != nil {
		return nil, err
	}

	bookName := p.BookName
	if bookName == "" {
		bookName = title
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO "transaction" (email, isbn, book_name, issue_date, due_date, returned) VALUES (?, ?, ?, ?, ?, 0)`,
		p.Email, p.ISBN, bookName, issueDate, dueDate)
	if err != nil {
		return nil, translateConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &models.Transaction{
		ID:        id,
		Email:     p.Email,
		ISBN:      p.ISBN,
		BookName:  bookName,
		IssueDate: issueDate,
		DueDate:   dueDate,
	}, nil
}

// MarkReturned flips the returned flag of a loan. Returns ErrNotFound for an
// unknown id. Idempotent: marking an already-returned loan succeeds without
// change.
func (r *TransactionRepository) MarkReturned(ctx context.Context, id int64) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	t, err := scanTransaction(tx.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM "transaction" WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	} else if err != nil {
		return nil, err
	}

	if !t.Returned {
		if _, err := tx.ExecContext(ctx, `UPDATE "transaction" SET returned = 1 WHERE id = ?`, id); err != nil {
			return nil, err
		}
		t.Returned = true
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	t, err := scanTransaction(r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM "transaction" WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns loans ordered by id, optionally filtered to one borrower.
func (r *TransactionRepository) List(ctx context.Context, p ListTransactionsParams) ([]models.Transaction, error) {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		rows *sql.Rows
		err  error
	)
	if p.Email != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+transactionColumns+` FROM "transaction" WHERE email = ? ORDER BY id LIMIT ? OFFSET ?`,
			p.Email, p.Limit, p.Offset)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+transactionColumns+` FROM "transaction" ORDER BY id LIMIT ? OFFSET ?`,
			p.Limit, p.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListPending returns every loan whose returned flag is still false,
// ordered by id.
func (r *TransactionRepository) ListPending(ctx context.Context) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM "transaction" WHERE returned = 0 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// CountPending returns the number of outstanding loans.
func (r *TransactionRepository) CountPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "transaction" WHERE returned = 0`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTransaction(s rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.Scan(&t.ID, &t.Email, &t.ISBN, &t.BookName, &t.IssueDate, &t.DueDate, &t.Returned); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var out []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
