package routes

import (
	"github.com/Govind-619/BooksWishlist/controllers"
	"github.com/Govind-619/BooksWishlist/repository"
	"github.com/Govind-619/BooksWishlist/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(store repository.Store) *gin.Engine {
	router := gin.New()

	router.Use(
		utils.RecoveryMiddleware(),
		utils.RequestIDMiddleware(),
		utils.LoggerMiddleware(),
		utils.SecurityHeadersMiddleware(),
		utils.CORSMiddleware(),
	)

	handler := controllers.NewHandler(store)

	router.GET("/", controllers.Index)

	api := router.Group(utils.APIPrefix)
	{
		api.GET("", controllers.Index)

		initUserRoutes(api, handler, store)
		initBookRoutes(api, handler)
	}

	return router
}
