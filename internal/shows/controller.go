package shows

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

func actorFromContext(ctx *gin.Context) (uuid.UUID, string, bool) {
	idStr, ok := middleware.AccountID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid account ID", nil, nil)
		return uuid.Nil, "", false
	}
	accountType, _ := middleware.AccountType(ctx)
	return id, accountType, true
}

// ConfirmDirectShow handles POST /api/v1/shows
func (c *Controller) ConfirmDirectShow(ctx *gin.Context) {
	accountID, accountType, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	var req ConfirmDirectShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	show, err := c.service.ConfirmDirectShow(ctx.Request.Context(), accountID, accountType, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Show confirmed", show, nil)
}

// GetShow handles GET /api/v1/shows/:id
func (c *Controller) GetShow(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	show, err := c.service.GetShow(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Show retrieved", show, nil)
}

// ListByArtist handles GET /api/v1/artists/:id/shows
func (c *Controller) ListByArtist(ctx *gin.Context) {
	artistID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid artist ID", nil, nil)
		return
	}

	result, err := c.service.ListByArtist(ctx.Request.Context(), artistID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Shows retrieved", result, nil)
}

// ListByVenue handles GET /api/v1/venues/:id/shows
func (c *Controller) ListByVenue(ctx *gin.Context) {
	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid venue ID", nil, nil)
		return
	}

	result, err := c.service.ListByVenue(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Shows retrieved", result, nil)
}

// CancelShow handles DELETE /api/v1/shows/:id
func (c *Controller) CancelShow(ctx *gin.Context) {
	accountID, accountType, ok := actorFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	show, err := c.service.CancelShow(ctx.Request.Context(), id, accountID, accountType)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Show cancelled", show, nil)
}
