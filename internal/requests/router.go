package requests

import (
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRequestRoutes configures tour request routes
func SetupRequestRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	requests := rg.Group("/requests")
	{
		// Public browse surface for venues scouting requests
		requests.GET("/active", controller.ListActive)
		requests.GET("/:id", controller.GetRequest)

		// Artist-owned mutations
		authed := requests.Group("")
		authed.Use(middleware.JWTAuth(cfg), middleware.RequireAccountType("ARTIST"))
		{
			authed.POST("", controller.CreateRequest)
			authed.PATCH("/:id", controller.PatchRequest)
			authed.DELETE("/:id", controller.DeleteRequest)
		}
	}

	artists := rg.Group("/artists")
	artists.Use(middleware.JWTAuth(cfg), middleware.RequireAccountType("ARTIST"))
	{
		artists.GET("/requests", controller.ListMine)
	}
}
