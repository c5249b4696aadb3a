package venues

import (
	"net/http"

	"tourboard/internal/shared/middleware"
	"tourboard/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func accountIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	idStr, ok := middleware.AccountID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid account ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// CreateVenue handles POST /api/v1/venues
func (c *Controller) CreateVenue(ctx *gin.Context) {
	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		return
	}

	var req CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	venue, err := c.service.CreateVenue(ctx.Request.Context(), accountID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created", venue, nil)
}

// GetVenue handles GET /api/v1/venues/:id
func (c *Controller) GetVenue(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, nil)
		return
	}

	venue, err := c.service.GetVenue(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved", venue, nil)
}

// ListVenues handles GET /api/v1/venues
func (c *Controller) ListVenues(ctx *gin.Context) {
	city := ctx.Query("city")
	state := ctx.Query("state")

	result, err := c.service.ListVenues(ctx.Request.Context(), city, state)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved", result, nil)
}

// UpdateAvailability handles PATCH /api/v1/venues/:id/availability
func (c *Controller) UpdateAvailability(ctx *gin.Context) {
	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		return
	}

	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, nil)
		return
	}

	var req UpdateAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	venue, err := c.service.UpdateAvailability(ctx.Request.Context(), venueID, accountID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability updated", venue, nil)
}
