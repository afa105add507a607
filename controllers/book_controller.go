package controllers

import (
	"context"
	"errors"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
)

// ListBooks returns every book ordered by isbn
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.store.ListBooks(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, gin.H{"books": models.SerializeBooks(books)})
}

// CreateBook adds a book to the catalogue
func (h *Handler) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := bindRequest(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	pubDate, err := utils.ParsePubDate(req.PubDate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	book := &models.Book{
		ISBN:    req.ISBN,
		Title:   req.Title,
		Author:  req.Author,
		PubDate: pubDate,
	}

	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.GetBookByISBN(ctx, req.ISBN); err == nil {
			return utils.ConflictError(utils.ErrISBNExists, nil)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := tx.CreateBook(ctx, book); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return utils.ConflictError(utils.ErrISBNExists, err)
			}
			return err
		}
		return nil
	})
	if !ok {
		return
	}

	utils.LogInfo("Book %s created", book.ISBN)
	utils.Created(c, gin.H{"book": book.Serialize()})
}

// GetBook returns one book
func (h *Handler) GetBook(c *gin.Context) {
	book, err := findBook(c.Request.Context(), h.store, c.Param("isbn"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, gin.H{"book": book.Serialize()})
}

// ListBookSubscribers returns the users whose wishlist holds the book
func (h *Handler) ListBookSubscribers(c *gin.Context) {
	var users []models.User
	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		book, err := findBook(ctx, tx, c.Param("isbn"))
		if err != nil {
			return err
		}
		users, err = tx.ListSubscribers(ctx, book.ISBN)
		return err
	})
	if !ok {
		return
	}
	utils.Success(c, gin.H{"users": models.SerializeUsers(users)})
}
