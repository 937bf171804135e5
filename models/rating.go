package models

// Rating is a user's score for a book, composite-keyed by (UID, ISBN) so a
// user holds at most one rating per book. Writes are upsert-by-key.
type Rating struct {
	UID    int64  `db:"uid" json:"uid"`
	ISBN   string `db:"isbn" json:"isbn"`
	Rating int64  `db:"rating" json:"rating"`
}
