package controllers

import (
	"context"
	"errors"

	"github.com/Govind-619/BooksWishlist/models"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
)

// ListUsers returns every user ordered by id
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, gin.H{"users": models.SerializeUsers(users)})
}

// CreateUser registers a user
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := bindRequest(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, utils.WrapError(err, "hash password"))
		return
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	ok := h.transaction(c, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.GetUserByEmail(ctx, req.Email); err == nil {
			return utils.ConflictError(utils.ErrEmailExists, nil)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := tx.CreateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return utils.ConflictError(utils.ErrEmailExists, err)
			}
			return err
		}
		return nil
	})
	if !ok {
		return
	}

	utils.LogInfo("User %d created", user.ID)
	utils.Created(c, gin.H{"user": user.Serialize()})
}

// GetUser returns one user
func (h *Handler) GetUser(c *gin.Context) {
	user, err := findUser(c.Request.Context(), h.store, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, gin.H{"user": user.Serialize()})
}
