package repository

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/Govind-619/BooksWishlist/models"
)

type wishlistKey struct {
	userID uint
	isbn   string
}

// memoryData holds the tables. It is not safe for concurrent use.
type memoryData struct {
	nextUserID uint
	users      map[uint]models.User
	books      map[string]models.Book
	entries    map[wishlistKey]struct{}
}

func newMemoryData() *memoryData {
	return &memoryData{
		nextUserID: 1,
		users:      make(map[uint]models.User),
		books:      make(map[string]models.Book),
		entries:    make(map[wishlistKey]struct{}),
	}
}

func (d *memoryData) clone() *memoryData {
	return &memoryData{
		nextUserID: d.nextUserID,
		users:      maps.Clone(d.users),
		books:      maps.Clone(d.books),
		entries:    maps.Clone(d.entries),
	}
}

func (d *memoryData) restore(from *memoryData) {
	*d = *from
}

func sortUsers(users []models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}

func sortBooks(books []models.Book) {
	sort.Slice(books, func(i, j int) bool { return books[i].ISBN < books[j].ISBN })
}

func (d *memoryData) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sortUsers(users)
	return users, nil
}

func (d *memoryData) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (d *memoryData) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range d.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (d *memoryData) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := d.GetUserByEmail(ctx, user.Email); err == nil {
		return ErrDuplicate
	}
	user.ID = d.nextUserID
	d.nextUserID++
	d.users[user.ID] = *user
	return nil
}

func (d *memoryData) ListBooks(ctx context.Context) ([]models.Book, error) {
	books := make([]models.Book, 0, len(d.books))
	for _, b := range d.books {
		books = append(books, b)
	}
	sortBooks(books)
	return books, nil
}

func (d *memoryData) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book, ok := d.books[isbn]
	if !ok {
		return nil, ErrNotFound
	}
	return &book, nil
}

func (d *memoryData) CreateBook(ctx context.Context, book *models.Book) error {
	if _, ok := d.books[book.ISBN]; ok {
		return ErrDuplicate
	}
	d.books[book.ISBN] = *book
	return nil
}

func (d *memoryData) SaveBook(ctx context.Context, book *models.Book) error {
	d.books[book.ISBN] = *book
	return nil
}

func (d *memoryData) ListWishlist(ctx context.Context, userID uint) ([]models.Book, error) {
	books := make([]models.Book, 0)
	for key := range d.entries {
		if key.userID == userID {
			books = append(books, d.books[key.isbn])
		}
	}
	sortBooks(books)
	return books, nil
}

func (d *memoryData) HasWishlistEntry(ctx context.Context, userID uint, isbn string) (bool, error) {
	_, ok := d.entries[wishlistKey{userID: userID, isbn: isbn}]
	return ok, nil
}

func (d *memoryData) AddWishlistEntry(ctx context.Context, userID uint, isbn string) error {
	if _, ok := d.users[userID]; !ok {
		return ErrNotFound
	}
	if _, ok := d.books[isbn]; !ok {
		return ErrNotFound
	}
	key := wishlistKey{userID: userID, isbn: isbn}
	if _, ok := d.entries[key]; ok {
		return ErrDuplicate
	}
	d.entries[key] = struct{}{}
	return nil
}

func (d *memoryData) RemoveWishlistEntry(ctx context.Context, userID uint, isbn string) error {
	key := wishlistKey{userID: userID, isbn: isbn}
	if _, ok := d.entries[key]; !ok {
		return ErrNotFound
	}
	delete(d.entries, key)
	return nil
}

func (d *memoryData) ListSubscribers(ctx context.Context, isbn string) ([]models.User, error) {
	users := make([]models.User, 0)
	for key := range d.entries {
		if key.isbn == isbn {
			users = append(users, d.users[key.userID])
		}
	}
	sortUsers(users)
	return users, nil
}

// transact runs fn against d and rolls d back if fn fails
func (d *memoryData) transact(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	snapshot := d.clone()
	if err := fn(ctx, &memoryTx{memoryData: d}); err != nil {
		d.restore(snapshot)
		return err
	}
	return nil
}

// memoryTx is the Store handed to Transaction callbacks. The owning
// MemoryStore lock is already held.
type memoryTx struct {
	*memoryData
}

var _ Store = (*memoryTx)(nil)

func (tx *memoryTx) Transaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return tx.transact(ctx, fn)
}

// MemoryStore is an in-process Store used by tests and by the memory
// storage backend. Transactions hold the write lock for their whole
// callback, so they are serialized.
type MemoryStore struct {
	mu   sync.RWMutex
	data *memoryData
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemoryData()}
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.ListUsers(ctx)
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.GetUserByID(ctx, id)
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.GetUserByEmail(ctx, email)
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CreateUser(ctx, user)
}

func (s *MemoryStore) ListBooks(ctx context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.ListBooks(ctx)
}

func (s *MemoryStore) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.GetBookByISBN(ctx, isbn)
}

func (s *MemoryStore) CreateBook(ctx context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.CreateBook(ctx, book)
}

func (s *MemoryStore) SaveBook(ctx context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.SaveBook(ctx, book)
}

func (s *MemoryStore) ListWishlist(ctx context.Context, userID uint) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.ListWishlist(ctx, userID)
}

func (s *MemoryStore) HasWishlistEntry(ctx context.Context, userID uint, isbn string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.HasWishlistEntry(ctx, userID, isbn)
}

func (s *MemoryStore) AddWishlistEntry(ctx context.Context, userID uint, isbn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AddWishlistEntry(ctx, userID, isbn)
}

func (s *MemoryStore) RemoveWishlistEntry(ctx context.Context, userID uint, isbn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.RemoveWishlistEntry(ctx, userID, isbn)
}

func (s *MemoryStore) ListSubscribers(ctx context.Context, isbn string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.ListSubscribers(ctx, isbn)
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.transact(ctx, fn)
}
