package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shrey-c/BookRecommender/models"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert writes a user's rating for a book, replacing any previous rating by
// the same (uid, isbn) key. Returns ErrReferential when the user or book does
// not exist.
func (r *RatingRepository) Upsert(ctx context.Context, uid int64, isbn string, rating int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ratings (uid, isbn, rating) VALUES (?, ?, ?)
		 ON CONFLICT(uid, isbn) DO UPDATE SET rating = excluded.rating`,
		uid, isbn, rating)
	return translateConstraint(err)
}

func (r *RatingRepository) GetByKey(ctx context.Context, uid int64, isbn string) (*models.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var rt models.Rating
	err := r.db.QueryRowContext(ctx,
		`SELECT uid, isbn, rating FROM ratings WHERE uid = ? AND isbn = ?`, uid, isbn).
		Scan(&rt.UID, &rt.ISBN, &rt.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}
