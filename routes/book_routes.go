package routes

import (
	"github.com/Govind-619/BooksWishlist/controllers"
	"github.com/gin-gonic/gin"
)

// initBookRoutes initializes the books routes
func initBookRoutes(router *gin.RouterGroup, h *controllers.Handler) {
	books := router.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.POST("", h.CreateBook)
		books.GET("/:isbn", h.GetBook)
		books.GET("/:isbn/users", h.ListBookSubscribers)
	}
}
