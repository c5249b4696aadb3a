package shows

import (
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupShowRoutes configures show routes
func SetupShowRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	shows := rg.Group("/shows")
	{
		shows.GET("/:id", controller.GetShow)

		authed := shows.Group("")
		authed.Use(middleware.JWTAuth(cfg))
		{
			authed.POST("", controller.ConfirmDirectShow)
			authed.DELETE("/:id", controller.CancelShow)
		}
	}

	rg.GET("/artists/:id/shows", controller.ListByArtist)
	rg.GET("/venues/:id/shows", controller.ListByVenue)
}
