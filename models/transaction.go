package models

import "time"

// Transaction represents a single loan event. Rows are an immutable audit
// trail: the only permitted mutation after creation is flipping Returned to
// true. A transaction is "pending" while Returned is false.
//
// Email and ISBN are foreign keys into users and books; BookName is a
// denormalized copy of the book title taken at issue time.
type Transaction struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	ISBN      string    `db:"isbn" json:"isbn"`
	BookName  string    `db:"book_name" json:"book_name"`
	IssueDate time.Time `db:"issue_date" json:"issue_date"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
	Returned  bool      `db:"returned" json:"returned"`
}

// Pending reports whether the loan is still outstanding.
func (t *Transaction) Pending() bool { return !t.Returned }
