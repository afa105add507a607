package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUserBookCreatesBook(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")

	resp := s.addToWishlist(ada, "/api/users/1", bookBody("42", "Hitchhiker", "Adams", "1979-10-12"))
	utils.AssertResponse(t, resp, http.StatusCreated, map[string]interface{}{
		"book": map[string]interface{}{
			"isbn":     "42",
			"title":    "Hitchhiker",
			"author":   "Adams",
			"pub_date": "1979-10-12",
		},
	})

	assert.Equal(t, []string{"42"}, isbns(t, s.get("/api/users/1/books")))
	assert.Equal(t, []string{"42"}, isbns(t, s.get("/api/books")))
	assert.Equal(t, []string{"ada@example.com"}, emails(t, s.get("/api/books/42/users")))
}

func TestAddUserBookExistingBook(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	s.createBook("42", "Hitchhiker", "Adams", "1979-10-12")

	resp := s.addToWishlist(ada, "/api/users/1", bookBody("42", "Hitchhiker", "Adams", "1979-10-12"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Raw))

	resp = s.addToWishlist(ada, "/api/users/1", bookBody("42", "Hitchhiker", "Adams", "1979-10-12"))
	utils.AssertMessage(t, resp, http.StatusConflict, "Book with this ISBN already in user's wishlist")

	assert.Equal(t, []string{"42"}, isbns(t, s.get("/api/users/1/books")))
}

func TestAddUserBookDifferentBook(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	s.createBook("42", "Hitchhiker", "Adams", "1979-10-12")

	for _, body := range []map[string]string{
		bookBody("42", "Other title", "Adams", "1979-10-12"),
		bookBody("42", "Hitchhiker", "Someone", "1979-10-12"),
		bookBody("42", "Hitchhiker", "Adams", "1980-01-01"),
	} {
		resp := s.addToWishlist(ada, "/api/users/1", body)
		utils.AssertMessage(t, resp, http.StatusConflict, "Different book with this ISBN already exists")
	}

	book := s.get("/api/books/42").Body["book"].(map[string]interface{})
	assert.Equal(t, "Hitchhiker", book["title"])
	assert.Equal(t, "Adams", book["author"])
	assert.Equal(t, "1979-10-12", book["pub_date"])
	assert.Equal(t, []string{}, isbns(t, s.get("/api/users/1/books")))
}

// racingStore hands out transactions in which another request has just
// inserted the book being created
type racingStore struct {
	repository.Store
}

func (s racingStore) Transaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return s.Store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		return fn(ctx, racingTx{tx})
	})
}

type racingTx struct {
	repository.Store
}

func (racingTx) CreateBook(context.Context, *models.Book) error {
	return repository.ErrDuplicate
}

func TestAddUserBookConcurrentCreate(t *testing.T) {
	s := newTestServerWith(t, repository.NewMemoryStore(), func(store repository.Store) repository.Store {
		return racingStore{store}
	})
	ada, _ := s.createUser("Ada", "ada@example.com")

	resp := s.addToWishlist(ada, "/api/users/1", bookBody("42", "Hitchhiker", "Adams", "1979-10-12"))
	utils.AssertMessage(t, resp, http.StatusConflict, "Book with this ISBN already exists")

	entries, err := s.store.ListWishlist(t.Context(), 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddUserBookErrors(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	bob, _ := s.createUser("Bob", "bob@example.com")
	valid := bookBody("42", "Hitchhiker", "Adams", "1979-10-12")

	t.Run("no credentials", func(t *testing.T) {
		resp := s.addToWishlist(nil, "/api/users/1", valid)
		utils.AssertMessage(t, resp, http.StatusUnauthorized, "Unauthorized access")
		assert.Equal(t, `Basic realm="Authentication Required"`, resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("wrong password", func(t *testing.T) {
		wrong := &utils.TestCredentials{Email: ada.Email, Password: "guess"}
		utils.AssertMessage(t, s.addToWishlist(wrong, "/api/users/1", valid), http.StatusUnauthorized, "Unauthorized access")
	})

	t.Run("missing field", func(t *testing.T) {
		body := bookBody("42", "Hitchhiker", "", "1979-10-12")
		utils.AssertMessage(t, s.addToWishlist(ada, "/api/users/1", body), http.StatusBadRequest, "Author not provided")
	})

	t.Run("unknown user", func(t *testing.T) {
		bad := bookBody("42", "Hitchhiker", "Adams", "bad-date")
		utils.AssertMessage(t, s.addToWishlist(ada, "/api/users/99", bad), http.StatusNotFound, "User not found")
	})

	t.Run("id out of range", func(t *testing.T) {
		for _, id := range []string{"9223372036854775808", "18446744073709551615", "18446744073709551616"} {
			resp := s.addToWishlist(ada, "/api/users/"+id, valid)
			utils.AssertMessage(t, resp, http.StatusNotFound, "User not found")
		}
	})

	t.Run("bad date before owner check", func(t *testing.T) {
		bad := bookBody("42", "Hitchhiker", "Adams", "12/10/1979")
		resp := s.addToWishlist(bob, "/api/users/1", bad)
		utils.AssertMessage(t, resp, http.StatusBadRequest, "Publication date (pub_date) must be in YYYY-mm-dd format")
	})

	t.Run("not the owner", func(t *testing.T) {
		resp := s.addToWishlist(bob, "/api/users/1", valid)
		utils.AssertMessage(t, resp, http.StatusUnauthorized, "Users are only allowed to add books to their own wishlist")
	})

	assert.Equal(t, []string{}, isbns(t, s.get("/api/users/1/books")))
	assert.Equal(t, []string{}, isbns(t, s.get("/api/books")))
}

func TestListUserBooks(t *testing.T) {
	s := newTestServer(t)
	utils.AssertMessage(t, s.get("/api/users/1/books"), http.StatusNotFound, "User not found")

	ada, _ := s.createUser("Ada", "ada@example.com")
	s.addToWishlist(ada, "/api/users/1", bookBody("3", "C", "X", "2000-01-01"))
	s.addToWishlist(ada, "/api/users/1", bookBody("1", "A", "X", "2000-01-01"))

	resp := s.get("/api/users/1/books")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"1", "3"}, isbns(t, resp))
}

func TestGetUserBook(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	s.createBook("7", "Seven", "X", "2007-07-07")

	utils.AssertMessage(t, s.get("/api/users/9/books/7"), http.StatusNotFound, "User not found")
	utils.AssertMessage(t, s.get("/api/users/1/books/8"), http.StatusNotFound, "Book not found")
	utils.AssertMessage(t, s.get("/api/users/1/books/7"), http.StatusNotFound, "Book with this ISBN not in user's wishlist")

	s.addToWishlist(ada, "/api/users/1", bookBody("7", "Seven", "X", "2007-07-07"))

	resp := s.get("/api/users/1/books/7")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Seven", resp.Body["book"].(map[string]interface{})["title"])
}

func updateBody(title, author, pubDate string) map[string]string {
	return map[string]string{"title": title, "author": author, "pub_date": pubDate}
}

func TestUpdateUserBook(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	s.createBook("7", "Seven", "X", "2007-07-07")

	t.Run("existing book not yet listed", func(t *testing.T) {
		resp := s.do(utils.TestRequest{
			Method: http.MethodPut,
			Path:   "/api/users/1/books/7",
			Body:   updateBody("Seven, revised", "Y", "2008-08-08"),
			Auth:   ada,
		})
		utils.AssertMessage(t, resp, http.StatusOK, "User's book wishlist updated successfully")

		book := s.get("/api/books/7").Body["book"].(map[string]interface{})
		assert.Equal(t, "Seven, revised", book["title"])
		assert.Equal(t, "Y", book["author"])
		assert.Equal(t, "2008-08-08", book["pub_date"])
		assert.Equal(t, []string{"7"}, isbns(t, s.get("/api/users/1/books")))
	})

	t.Run("already listed stays listed once", func(t *testing.T) {
		resp := s.do(utils.TestRequest{
			Method: http.MethodPut,
			Path:   "/api/users/1/books/7",
			Form:   formOf(updateBody("Seven", "X", "2007-07-07")),
			Auth:   ada,
		})
		utils.AssertMessage(t, resp, http.StatusOK, "User's book wishlist updated successfully")
		assert.Equal(t, []string{"7"}, isbns(t, s.get("/api/users/1/books")))
		assert.Equal(t, []string{"ada@example.com"}, emails(t, s.get("/api/books/7/users")))
	})

	t.Run("new isbn creates the book", func(t *testing.T) {
		resp := s.do(utils.TestRequest{
			Method: http.MethodPut,
			Path:   "/api/users/1/books/8",
			Body:   updateBody("Eight", "Z", "2009-09-09"),
			Auth:   ada,
		})
		utils.AssertMessage(t, resp, http.StatusOK, "User's book wishlist updated successfully")
		assert.Equal(t, []string{"7", "8"}, isbns(t, s.get("/api/users/1/books")))
		assert.Equal(t, http.StatusOK, s.get("/api/books/8").StatusCode)
	})
}

func TestUpdateUserBookErrors(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	bob, _ := s.createUser("Bob", "bob@example.com")
	s.createBook("7", "Seven", "X", "2007-07-07")

	put := func(auth *utils.TestCredentials, path string, body map[string]string) utils.TestResponse {
		return s.do(utils.TestRequest{Method: http.MethodPut, Path: path, Body: body, Auth: auth})
	}

	utils.AssertMessage(t, put(nil, "/api/users/1/books/7", updateBody("T", "A", "2000-01-01")),
		http.StatusUnauthorized, "Unauthorized access")
	utils.AssertMessage(t, put(ada, "/api/users/1/books/7", updateBody("", "A", "2000-01-01")),
		http.StatusBadRequest, "Title not provided")
	utils.AssertMessage(t, put(ada, "/api/users/5/books/7", updateBody("T", "A", "2000-01-01")),
		http.StatusNotFound, "User not found")

	// the owner check runs before the date is parsed
	utils.AssertMessage(t, put(bob, "/api/users/1/books/7", updateBody("T", "A", "bad")),
		http.StatusUnauthorized, "Users are only allowed to update books in their own wishlist")
	utils.AssertMessage(t, put(ada, "/api/users/1/books/7", updateBody("T", "A", "bad")),
		http.StatusBadRequest, "Publication date (pub_date) must be in YYYY-mm-dd format")

	book := s.get("/api/books/7").Body["book"].(map[string]interface{})
	assert.Equal(t, "Seven", book["title"])
	assert.Equal(t, []string{}, isbns(t, s.get("/api/users/1/books")))
}

func TestDeleteUserBook(t *testing.T) {
	s := newTestServer(t)
	ada, _ := s.createUser("Ada", "ada@example.com")
	bob, _ := s.createUser("Bob", "bob@example.com")
	s.addToWishlist(ada, "/api/users/1", bookBody("7", "Seven", "X", "2007-07-07"))
	s.createBook("8", "Eight", "X", "2008-08-08")

	del := func(auth *utils.TestCredentials, path string) utils.TestResponse {
		return s.do(utils.TestRequest{Method: http.MethodDelete, Path: path, Auth: auth})
	}

	utils.AssertMessage(t, del(nil, "/api/users/1/books/7"), http.StatusUnauthorized, "Unauthorized access")
	utils.AssertMessage(t, del(ada, "/api/users/9/books/7"), http.StatusNotFound, "User not found")
	utils.AssertMessage(t, del(ada, "/api/users/1/books/9"), http.StatusNotFound, "Book not found")
	utils.AssertMessage(t, del(bob, "/api/users/1/books/7"), http.StatusUnauthorized,
		"Users are only allowed to delete books from their own wishlist")
	utils.AssertMessage(t, del(ada, "/api/users/1/books/8"), http.StatusNotFound, "Book with this ISBN not in user's wishlist")

	assert.Equal(t, []string{"7"}, isbns(t, s.get("/api/users/1/books")))

	utils.AssertMessage(t, del(ada, "/api/users/1/books/7"), http.StatusOK, "Book deleted from user's wishlist successfully")
	assert.Equal(t, []string{}, isbns(t, s.get("/api/users/1/books")))
	assert.Equal(t, []string{}, emails(t, s.get("/api/books/7/users")))

	// the book itself survives
	assert.Equal(t, http.StatusOK, s.get("/api/books/7").StatusCode)

	utils.AssertMessage(t, del(ada, "/api/users/1/books/7"), http.StatusNotFound, "Book with this ISBN not in user's wishlist")
}
