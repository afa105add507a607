package models

import (
	"time"
)

// DateLayout is the wire format of publication dates
const DateLayout = "2006-01-02"

// Book is keyed by its ISBN. The ISBN is treated as an opaque string.
type Book struct {
	ISBN    string    `json:"isbn" gorm:"primaryKey;size:32"`
	Title   string    `json:"title" gorm:"size:140"`
	Author  string    `json:"author" gorm:"size:128;index"`
	PubDate time.Time `json:"pub_date" gorm:"type:date"`
}

// BookResponse is the public representation of a book
type BookResponse struct {
	ISBN    string `json:"isbn"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	PubDate string `json:"pub_date"`
}

// Serialize formats the book for responses
func (b Book) Serialize() BookResponse {
	return BookResponse{
		ISBN:    b.ISBN,
		Title:   b.Title,
		Author:  b.Author,
		PubDate: b.PubDate.Format(DateLayout),
	}
}

// Matches reports whether the book carries exactly the given title, author
// and publication date. Dates are compared at day precision.
func (b Book) Matches(title, author string, pubDate time.Time) bool {
	return b.Title == title &&
		b.Author == author &&
		b.PubDate.Format(DateLayout) == pubDate.Format(DateLayout)
}

// SerializeBooks serializes a list of books, never returning nil
func SerializeBooks(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, b.Serialize())
	}
	return out
}
