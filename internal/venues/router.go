package venues

import (
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupVenueRoutes configures venue directory routes
func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	venues := rg.Group("/venues")
	{
		// Public directory
		venues.GET("", controller.ListVenues)
		venues.GET("/:id", controller.GetVenue)

		// Venue-owned mutations
		authed := venues.Group("")
		authed.Use(middleware.JWTAuth(cfg), middleware.RequireAccountType("VENUE"))
		{
			authed.POST("", controller.CreateVenue)
			authed.PATCH("/:id/availability", controller.UpdateAvailability)
		}
	}
}
