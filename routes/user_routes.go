package routes

import (
	"github.com/Govind-619/BooksWishlist/controllers"
	"github.com/Govind-619/BooksWishlist/middleware"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes the users and wishlist routes
func initUserRoutes(router *gin.RouterGroup, h *controllers.Handler, store repository.Store) {
	users := router.Group("/users")
	{
		// Public routes
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/books", h.ListUserBooks)
		users.GET("/:id/books/:isbn", h.GetUserBook)

		// Wishlist mutations require HTTP Basic credentials of the owner
		users.POST("/:id/books", middleware.RequireBasicAuth(store, h.AddUserBook))
		users.PUT("/:id/books/:isbn", middleware.RequireBasicAuth(store, h.UpdateUserBook))
		users.DELETE("/:id/books/:isbn", middleware.RequireBasicAuth(store, h.DeleteUserBook))
	}
}
