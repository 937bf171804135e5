// Package recommend produces ordered book recommendation lists from the
// ratings table. All queries are read-only; every operation except Random is
// a deterministic aggregate.
package recommend

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shrey-c/BookRecommender/models"
	"github.com/shrey-c/BookRecommender/repository"
)

// DefaultN is the list length used when the caller asks for zero or fewer.
const DefaultN = 3

type Recommender struct {
	db *sql.DB
}

func New(db *sql.DB) *Recommender {
	return &Recommender{db: db}
}

const bookColumns = `b.isbn, b.title, b.author, b.year_of_pub, b.publisher, b.img_url_s, b.img_url_m, b.img_url_l`

// MostRated returns the n books with the most ratings, descending by rating
// count. Ties break on ISBN ascending.
func (r *Recommender) MostRated(ctx context.Context, n int) ([]models.Book, error) {
	return r.queryBooks(ctx, `
SELECT `+bookColumns+`
FROM (SELECT isbn, COUNT(rating) AS qty FROM ratings GROUP BY isbn) q
JOIN books b ON b.isbn = q.isbn
ORDER BY q.qty DESC, b.isbn ASC
LIMIT ?`, clampN(n))
}

// TopAverageRated returns the n books with the highest average rating,
// descending by average then by rating count, ties on ISBN ascending. Books
// with no ratings never appear since no group exists for them.
func (r *Recommender) TopAverageRated(ctx context.Context, n int) ([]models.Book, error) {
	return r.queryBooks(ctx, `
SELECT `+bookColumns+`
FROM (SELECT isbn, COUNT(rating) AS qty, AVG(rating) AS avg_rating FROM ratings GROUP BY isbn) q
JOIN books b ON b.isbn = q.isbn
ORDER BY q.avg_rating DESC, q.qty DESC, b.isbn ASC
LIMIT ?`, clampN(n))
}

// TopRated resolves the n highest individual rating rows to books, without
// grouping. A book rated twice at the top value appears twice; that matches
// the historical behavior and is intentionally left ungrouped.
func (r *Recommender) TopRated(ctx context.Context, n int) ([]models.Book, error) {
	return r.queryBooks(ctx, `
SELECT `+bookColumns+`
FROM ratings r
JOIN books b ON b.isbn = r.isbn
ORDER BY r.rating DESC, b.isbn ASC
LIMIT ?`, clampN(n))
}

// TopRatedISBNs is TopRated without the book resolution step: it returns the
// raw ISBN strings of the n highest rating rows.
func (r *Recommender) TopRatedISBNs(ctx context.Context, n int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT isbn FROM ratings ORDER BY rating DESC, isbn ASC LIMIT ?`, clampN(n))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var isbn string
		if err := rows.Scan(&isbn); err != nil {
			return nil, err
		}
		out = append(out, isbn)
	}
	return out, rows.Err()
}

// Random picks n distinct books from the whole catalog uniformly at random,
// without replacement. Returns ErrInsufficientData when the catalog holds
// fewer than n books.
func (r *Recommender) Random(ctx context.Context, n int) ([]models.Book, error) {
	n = clampN(n)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, err
	}
	if total < n {
		return nil, fmt.Errorf("%w: catalog holds %d books, %d requested",
			repository.ErrInsufficientData, total, n)
	}
	return r.queryBooks(ctx, `
SELECT `+bookColumns+`
FROM books b
ORDER BY RANDOM()
LIMIT ?`, n)
}

func (r *Recommender) queryBooks(ctx context.Context, query string, n int) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, n)
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

func clampN(n int) int {
	if n <= 0 {
		return DefaultN
	}
	return n
}
