package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
)

// Handler serves the users, books and wishlist resources
type Handler struct {
	store repository.Store
}

// NewHandler creates a handler backed by store
func NewHandler(store repository.Store) *Handler {
	return &Handler{store: store}
}

// Index answers the root routes with a welcome text
func Index(c *gin.Context) {
	c.String(http.StatusOK, utils.WelcomeMessage)
}

// transaction runs fn in a store transaction and writes the error response
// if it fails. It reports whether fn succeeded.
func (h *Handler) transaction(c *gin.Context, fn func(ctx context.Context, tx repository.Store) error) bool {
	if err := h.store.Transaction(c.Request.Context(), fn); err != nil {
		utils.RespondError(c, err)
		return false
	}
	return true
}

// notFound turns repository.ErrNotFound into a 404 carrying message
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFoundError(message, err)
	}
	return err
}

// findUser resolves the :id path parameter. Ids that are not numbers, or
// do not fit a signed 64-bit column, are reported as missing users.
func findUser(ctx context.Context, tx repository.Store, rawID string) (*models.User, error) {
	id, err := strconv.ParseUint(rawID, 10, 63)
	if err != nil {
		return nil, utils.NotFoundError(utils.ErrUserNotFound, err)
	}
	user, err := tx.GetUserByID(ctx, uint(id))
	if err != nil {
		return nil, notFound(err, utils.ErrUserNotFound)
	}
	return user, nil
}

func findBook(ctx context.Context, tx repository.Store, isbn string) (*models.Book, error) {
	book, err := tx.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, notFound(err, utils.ErrBookNotFound)
	}
	return book, nil
}

// requireOwner allows a wishlist mutation only when the caller is the
// wishlist's user
func requireOwner(caller, target *models.User, message string) error {
	if caller.Email != target.Email {
		utils.LogError("Ownership check failed: user %d tried to modify wishlist of user %d", caller.ID, target.ID)
		return utils.UnauthorizedError(message, nil)
	}
	return nil
}
