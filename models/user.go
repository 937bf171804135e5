package models

// User represents a registered borrower.
// It maps to the `users` table in SQLite. Password always holds a bcrypt
// hash, never plaintext, and is excluded from JSON output.
type User struct {
	ID            int64   `db:"id" json:"id"`
	Email         string  `db:"email" json:"email"`
	Password      string  `db:"password" json:"-"`
	Age           *int64  `db:"age" json:"-"`
	Location      *string `db:"location" json:"-"`
	Authenticated bool    `db:"authenticated" json:"-"`
}
