package models

// Book represents a catalog entry. ISBN is the primary key; there is no
// separate surrogate id.
type Book struct {
	ISBN      string `db:"isbn" json:"isbn"`
	Title     string `db:"title" json:"title"`
	Author    string `db:"author" json:"author"`
	YearOfPub uint   `db:"year_of_pub" json:"year_of_pub"`
	Publisher string `db:"publisher" json:"publisher"`
	ImgURLS   string `db:"img_url_s" json:"img_url_s,omitempty"`
	ImgURLM   string `db:"img_url_m" json:"img_url_m,omitempty"`
	ImgURLL   string `db:"img_url_l" json:"img_url_l,omitempty"`
}
