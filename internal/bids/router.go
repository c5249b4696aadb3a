package bids

import (
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBidRoutes configures negotiation routes
func SetupBidRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Bid submission and listing live under the parent request
	reqScoped := rg.Group("/requests/:id/bids")
	{
		reqScoped.GET("", controller.ListByRequest)

		venueAuthed := reqScoped.Group("")
		venueAuthed.Use(middleware.JWTAuth(cfg), middleware.RequireAccountType("VENUE"))
		{
			venueAuthed.POST("", controller.SubmitBid)
		}
	}

	bids := rg.Group("/bids")
	{
		bids.GET("/:id", controller.GetBid)

		// hold/accept/decline are artist actions, cancel is venue's; the
		// service authorizes per action
		authed := bids.Group("")
		authed.Use(middleware.JWTAuth(cfg))
		{
			authed.PATCH("/:id", controller.PatchBid)
		}
	}

	venueAuthed := rg.Group("/venues/bids")
	venueAuthed.Use(middleware.JWTAuth(cfg), middleware.RequireAccountType("VENUE"))
	{
		venueAuthed.GET("", controller.ListMine)
	}
}
