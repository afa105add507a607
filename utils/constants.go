package utils

// Application constants
const (
	// Application name
	AppName = "BooksWishlist"

	// API prefix
	APIPrefix = "/api"

	// Welcome text served on the index routes
	WelcomeMessage = "Welcome to the books wishlist API"

	// Default port
	DefaultPort = "8080"

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "books_wishlist"

	// Default database user
	DefaultDBUser = "postgres"

	// Default database password
	DefaultDBPassword = "postgres"

	// Default postgres sslmode
	DefaultDBSSLMode = "disable"

	// Default directory for log files
	DefaultLogDir = "logs"

	// Storage backends
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	// Basic auth realm
	AuthRealm = "Authentication Required"
)

// Error messages
const (
	ErrInternal       = "Internal server error"
	ErrUnauthorized   = "Unauthorized access"
	ErrInvalidBody    = "Invalid request body"
	ErrInvalidPubDate = "Publication date (pub_date) must be in YYYY-mm-dd format"

	ErrUserNotFound   = "User not found"
	ErrBookNotFound   = "Book not found"
	ErrEmailExists    = "User with this email already exists"
	ErrISBNExists     = "Book with this ISBN already exists"
	ErrDifferentBook  = "Different book with this ISBN already exists"
	ErrAlreadyListed  = "Book with this ISBN already in user's wishlist"
	ErrNotListed      = "Book with this ISBN not in user's wishlist"
	ErrAddNotOwner    = "Users are only allowed to add books to their own wishlist"
	ErrUpdateNotOwner = "Users are only allowed to update books in their own wishlist"
	ErrDeleteNotOwner = "Users are only allowed to delete books from their own wishlist"
)

// Success messages
const (
	MsgWishlistUpdated = "User's book wishlist updated successfully"
	MsgWishlistDeleted = "Book deleted from user's wishlist successfully"
)
