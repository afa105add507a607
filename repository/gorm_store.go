package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Govind-619/BooksWishlist/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is a Store backed by a gorm connection. The connection must be
// opened with TranslateError so unique violations surface as ErrDuplicate.
type GormStore struct {
	db     *gorm.DB
	tracer trace.Tracer
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:     db,
		tracer: otel.Tracer("bookswishlist/repository"),
	}
}

func (s *GormStore) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "repository."+name, trace.WithAttributes(attrs...))
}

// finish maps gorm errors to the package sentinels and records failures on the span
func finish(span trace.Span, op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		span.SetAttributes(attribute.Bool("record.found", false))
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		span.SetAttributes(attribute.Bool("conflict.detected", true))
		return ErrDuplicate
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return fmt.Errorf("%s: %w", op, err)
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, span := s.start(ctx, "list_users")
	defer span.End()

	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, finish(span, "list users", err)
	}
	span.SetAttributes(attribute.Int("users.loaded", len(users)))
	return users, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	ctx, span := s.start(ctx, "get_user", attribute.Int64("user.id", int64(id)))
	defer span.End()

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, finish(span, "get user", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := s.start(ctx, "get_user_by_email")
	defer span.End()

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, finish(span, "get user by email", err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	ctx, span := s.start(ctx, "create_user")
	defer span.End()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return finish(span, "create user", err)
	}
	span.SetAttributes(attribute.Int64("user.id", int64(user.ID)))
	return nil
}

func (s *GormStore) ListBooks(ctx context.Context) ([]models.Book, error) {
	ctx, span := s.start(ctx, "list_books")
	defer span.End()

	var books []models.Book
	if err := s.db.WithContext(ctx).Order("isbn").Find(&books).Error; err != nil {
		return nil, finish(span, "list books", err)
	}
	span.SetAttributes(attribute.Int("books.loaded", len(books)))
	return books, nil
}

func (s *GormStore) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	ctx, span := s.start(ctx, "get_book", attribute.String("book.isbn", isbn))
	defer span.End()

	var book models.Book
	if err := s.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, finish(span, "get book", err)
	}
	return &book, nil
}

func (s *GormStore) CreateBook(ctx context.Context, book *models.Book) error {
	ctx, span := s.start(ctx, "create_book", attribute.String("book.isbn", book.ISBN))
	defer span.End()

	if err := s.db.WithContext(ctx).Create(book).Error; err != nil {
		return finish(span, "create book", err)
	}
	return nil
}

func (s *GormStore) SaveBook(ctx context.Context, book *models.Book) error {
	ctx, span := s.start(ctx, "save_book", attribute.String("book.isbn", book.ISBN))
	defer span.End()

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "isbn"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "author", "pub_date"}),
	}).Create(book).Error
	if err != nil {
		return finish(span, "save book", err)
	}
	return nil
}

func (s *GormStore) ListWishlist(ctx context.Context, userID uint) ([]models.Book, error) {
	ctx, span := s.start(ctx, "list_wishlist", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	var books []models.Book
	err := s.db.WithContext(ctx).
		Joins("JOIN user_books ON user_books.isbn = books.isbn").
		Where("user_books.user_id = ?", userID).
		Order("books.isbn").
		Find(&books).Error
	if err != nil {
		return nil, finish(span, "list wishlist", err)
	}
	span.SetAttributes(attribute.Int("books.loaded", len(books)))
	return books, nil
}

func (s *GormStore) HasWishlistEntry(ctx context.Context, userID uint, isbn string) (bool, error) {
	ctx, span := s.start(ctx, "has_wishlist_entry",
		attribute.Int64("user.id", int64(userID)),
		attribute.String("book.isbn", isbn),
	)
	defer span.End()

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.UserBook{}).
		Where("user_id = ? AND isbn = ?", userID, isbn).
		Count(&count).Error
	if err != nil {
		return false, finish(span, "check wishlist entry", err)
	}
	return count > 0, nil
}

func (s *GormStore) AddWishlistEntry(ctx context.Context, userID uint, isbn string) error {
	ctx, span := s.start(ctx, "add_wishlist_entry",
		attribute.Int64("user.id", int64(userID)),
		attribute.String("book.isbn", isbn),
	)
	defer span.End()

	entry := models.UserBook{UserID: userID, ISBN: isbn}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&entry).Error; err != nil {
		return finish(span, "add wishlist entry", err)
	}
	return nil
}

func (s *GormStore) RemoveWishlistEntry(ctx context.Context, userID uint, isbn string) error {
	ctx, span := s.start(ctx, "remove_wishlist_entry",
		attribute.Int64("user.id", int64(userID)),
		attribute.String("book.isbn", isbn),
	)
	defer span.End()

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND isbn = ?", userID, isbn).
		Delete(&models.UserBook{})
	if result.Error != nil {
		return finish(span, "remove wishlist entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListSubscribers(ctx context.Context, isbn string) ([]models.User, error) {
	ctx, span := s.start(ctx, "list_subscribers", attribute.String("book.isbn", isbn))
	defer span.End()

	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_books ON user_books.user_id = users.id").
		Where("user_books.isbn = ?", isbn).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, finish(span, "list subscribers", err)
	}
	span.SetAttributes(attribute.Int("users.loaded", len(users)))
	return users, nil
}

// Transaction runs fn in a serializable database transaction
func (s *GormStore) Transaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	ctx, span := s.start(ctx, "transaction")
	defer span.End()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &GormStore{db: tx, tracer: s.tracer})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		span.SetAttributes(attribute.Bool("transaction.committed", false))
		return err
	}
	span.SetAttributes(attribute.Bool("transaction.committed", true))
	return nil
}
