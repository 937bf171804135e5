package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shrey-c/BookRecommender/internal/auth"
	"github.com/shrey-c/BookRecommender/internal/db"
	"github.com/shrey-c/BookRecommender/models"
	"github.com/shrey-c/BookRecommender/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Each test passes a distinct name so shared-cache databases don't collide.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// Token returns a signed session JWT for the given email.
func Token(t *testing.T, secret, email string) string {
	t.Helper()
	tok, err := auth.IssueToken(secret, email, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// SeedUser inserts a user with a pre-hashed placeholder password.
func SeedUser(t *testing.T, d *sql.DB, email string) *models.User {
	t.Helper()
	u, err := repository.NewUserRepository(d).Create(context.Background(), email, "$2a$10$placeholderplaceholderpl", nil, nil)
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

// SeedBook inserts a minimal catalog entry.
func SeedBook(t *testing.T, d *sql.DB, isbn, title string) *models.Book {
	t.Helper()
	b := &models.Book{ISBN: isbn, Title: title, Author: "unknown"}
	if err := repository.NewBookRepository(d).Create(context.Background(), b); err != nil {
		t.Fatalf("seed book %s: %v", isbn, err)
	}
	return b
}

// SeedRating upserts one rating row.
func SeedRating(t *testing.T, d *sql.DB, uid int64, isbn string, rating int64) {
	t.Helper()
	if err := repository.NewRatingRepository(d).Upsert(context.Background(), uid, isbn, rating); err != nil {
		t.Fatalf("seed rating %d/%s: %v", uid, isbn, err)
	}
}
