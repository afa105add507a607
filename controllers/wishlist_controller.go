package controllers

import (
	"context"
	"errors"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
)

// ListUserBooks returns a user's wishlist
func (h *Handler) ListUserBooks(c *gin.Context) {
	var books []models.Book
	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		user, err := findUser(ctx, tx, c.Param("id"))
		if err != nil {
			return err
		}
		books, err = tx.ListWishlist(ctx, user.ID)
		return err
	})
	if !ok {
		return
	}
	utils.Success(c, gin.H{"books": models.SerializeBooks(books)})
}

// AddUserBook puts a book on the caller's wishlist, creating the book when
// its ISBN is new
func (h *Handler) AddUserBook(c *gin.Context, caller *models.User) {
	var req BookRequest
	if err := bindRequest(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	var added *models.Book
	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		user, err := findUser(ctx, tx, c.Param("id"))
		if err != nil {
			return err
		}
		pubDate, err := utils.ParsePubDate(req.PubDate)
		if err != nil {
			return err
		}
		if err := requireOwner(caller, user, utils.ErrAddNotOwner); err != nil {
			return err
		}

		book, err := tx.GetBookByISBN(ctx, req.ISBN)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			book = &models.Book{
				ISBN:    req.ISBN,
				Title:   req.Title,
				Author:  req.Author,
				PubDate: pubDate,
			}
			if err := tx.CreateBook(ctx, book); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return utils.ConflictError(utils.ErrISBNExists, err)
				}
				return err
			}
		case err != nil:
			return err
		case !book.Matches(req.Title, req.Author, pubDate):
			utils.LogInfo("Conflicting details for book %s", req.ISBN)
			return utils.ConflictError(utils.ErrDifferentBook, nil)
		default:
			listed, err := tx.HasWishlistEntry(ctx, user.ID, book.ISBN)
			if err != nil {
				return err
			}
			if listed {
				return utils.ConflictError(utils.ErrAlreadyListed, nil)
			}
		}

		if err := tx.AddWishlistEntry(ctx, user.ID, book.ISBN); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return utils.ConflictError(utils.ErrAlreadyListed, err)
			}
			return err
		}
		added = book
		return nil
	})
	if !ok {
		return
	}

	utils.LogInfo("Book %s added to wishlist of user %d", added.ISBN, caller.ID)
	utils.Created(c, gin.H{"book": added.Serialize()})
}

// GetUserBook returns a book from a user's wishlist
func (h *Handler) GetUserBook(c *gin.Context) {
	var book *models.Book
	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		user, err := findUser(ctx, tx, c.Param("id"))
		if err != nil {
			return err
		}
		book, err = findBook(ctx, tx, c.Param("isbn"))
		if err != nil {
			return err
		}
		listed, err := tx.HasWishlistEntry(ctx, user.ID, book.ISBN)
		if err != nil {
			return err
		}
		if !listed {
			return utils.NotFoundError(utils.ErrNotListed, nil)
		}
		return nil
	})
	if !ok {
		return
	}
	utils.Success(c, gin.H{"book": book.Serialize()})
}

// UpdateUserBook overwrites the book's details and makes sure it is on the
// caller's wishlist
func (h *Handler) UpdateUserBook(c *gin.Context, caller *models.User) {
	var req BookUpdateRequest
	if err := bindRequest(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	isbn := c.Param("isbn")

	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		user, err := findUser(ctx, tx, c.Param("id"))
		if err != nil {
			return err
		}
		if err := requireOwner(caller, user, utils.ErrUpdateNotOwner); err != nil {
			return err
		}
		pubDate, err := utils.ParsePubDate(req.PubDate)
		if err != nil {
			return err
		}

		book := &models.Book{
			ISBN:    isbn,
			Title:   req.Title,
			Author:  req.Author,
			PubDate: pubDate,
		}
		if err := tx.SaveBook(ctx, book); err != nil {
			return err
		}

		listed, err := tx.HasWishlistEntry(ctx, user.ID, isbn)
		if err != nil {
			return err
		}
		if !listed {
			return tx.AddWishlistEntry(ctx, user.ID, isbn)
		}
		return nil
	})
	if !ok {
		return
	}

	utils.LogInfo("Book %s updated in wishlist of user %d", isbn, caller.ID)
	utils.Message(c, utils.MsgWishlistUpdated)
}

// DeleteUserBook removes a book from the caller's wishlist. The book itself
// is kept.
func (h *Handler) DeleteUserBook(c *gin.Context, caller *models.User) {
	isbn := c.Param("isbn")

	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		user, err := findUser(ctx, tx, c.Param("id"))
		if err != nil {
			return err
		}
		if _, err := findBook(ctx, tx, isbn); err != nil {
			return err
		}
		if err := requireOwner(caller, user, utils.ErrDeleteNotOwner); err != nil {
			return err
		}
		if err := tx.RemoveWishlistEntry(ctx, user.ID, isbn); err != nil {
			return notFound(err, utils.ErrNotListed)
		}
		return nil
	})
	if !ok {
		return
	}

	utils.LogInfo("Book %s removed from wishlist of user %d", isbn, caller.ID)
	utils.Message(c, utils.MsgWishlistDeleted)
}
