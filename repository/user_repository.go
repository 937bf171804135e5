package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shrey-c/BookRecommender/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. passwordHash must already be hashed by the
// credential service; this layer never sees plaintext.
// Returns ErrDuplicate when the email is already registered.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, age *int64, location *string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password, age, location, authenticated) VALUES (?, ?, ?, ?, 0)`,
		email, passwordHash, age, location)
	if err != nil {
		return nil, translateConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Email: email, Password: passwordHash, Age: age, Location: location}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, password, age, location, authenticated FROM users WHERE id = ?`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, email, password, age, location, authenticated FROM users WHERE email = ?`, email))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, password, age, location, authenticated FROM users ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// SetAuthenticated flips the login flag kept alongside the user row.
// Returns ErrNotFound for an unknown email.
func (r *UserRepository) SetAuthenticated(ctx context.Context, email string, authenticated bool) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE users SET authenticated = ? WHERE email = ?`, authenticated, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row. authenticated is nullable after the 0002
// migration, so NULL reads as false.
func scanUser(s rowScanner) (*models.User, error) {
	var u models.User
	var authenticated sql.NullBool
	if err := s.Scan(&u.ID, &u.Email, &u.Password, &u.Age, &u.Location, &authenticated); err != nil {
		return nil, err
	}
	u.Authenticated = authenticated.Valid && authenticated.Bool
	return &u, nil
}
