package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shrey-c/BookRecommender/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `isbn, title, author, year_of_pub, publisher, img_url_s, img_url_m, img_url_l`

// Create inserts a catalog entry. Returns ErrDuplicate when the ISBN is
// already present.
func (r *BookRepository) Create(ctx context.Context, b *models.Book) error {
	if b == nil {
		return errors.New("book is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ISBN, b.Title, b.Author, b.YearOfPub, b.Publisher, b.ImgURLS, b.ImgURLM, b.ImgURLL)
	return translateConstraint(err)
}

func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b models.Book
	err := r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn).
		Scan(&b.ISBN, &b.Title, &b.Author, &b.YearOfPub, &b.Publisher, &b.ImgURLS, &b.ImgURLM, &b.ImgURLL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookRepository) List(ctx context.Context, limit, offset int) ([]models.Book, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY isbn LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.YearOfPub, &b.Publisher, &b.ImgURLS, &b.ImgURLM, &b.ImgURLL); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes a catalog entry. Returns ErrNotFound for an unknown ISBN and
// ErrReferential when transactions or ratings still reference the book.
func (r *BookRepository) Delete(ctx context.Context, isbn string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = ?`, isbn)
	if err != nil {
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
