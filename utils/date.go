package utils

import (
	"time"

	"github.com/Govind-619/BooksWishlist/models"
)

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, value, time.UTC)
}

// ParsePubDate parses a publication date, reporting failures as a 400
func ParsePubDate(value string) (time.Time, error) {
	date, err := ParseDate(value)
	if err != nil {
		return time.Time{}, BadRequestError(ErrInvalidPubDate, err)
	}
	return date, nil
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}
