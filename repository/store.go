// Package repository persists users, books and wishlist entries.
package repository

import (
	"context"
	"errors"

	"github.com/Govind-619/BooksWishlist/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the persistence contract of the API. Lists are ordered: users by
// id, books by isbn.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error)
	CreateBook(ctx context.Context, book *models.Book) error
	// SaveBook creates the book or overwrites title, author and pub_date
	SaveBook(ctx context.Context, book *models.Book) error

	ListWishlist(ctx context.Context, userID uint) ([]models.Book, error)
	HasWishlistEntry(ctx context.Context, userID uint, isbn string) (bool, error)
	AddWishlistEntry(ctx context.Context, userID uint, isbn string) error
	RemoveWishlistEntry(ctx context.Context, userID uint, isbn string) error
	ListSubscribers(ctx context.Context, isbn string) ([]models.User, error)

	// Transaction runs fn atomically. If fn returns an error every change
	// made through tx is discarded and the error is returned unchanged.
	Transaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
