package bids

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

func accountFromContext(ctx *gin.Context) (uuid.UUID, bool) {
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

// SubmitBid handles POST /api/v1/requests/:id/bids
func (c *Controller) SubmitBid(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	tourRequestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	var payload SubmitBidPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bid, err := c.service.SubmitBid(ctx.Request.Context(), accountID, tourRequestID, payload)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Bid submitted", bid, nil)
}

// GetBid handles GET /api/v1/bids/:id
func (c *Controller) GetBid(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bid ID", nil, nil)
		return
	}

	bid, err := c.service.GetBid(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bid retrieved", bid, nil)
}

// ListByRequest handles GET /api/v1/requests/:id/bids
func (c *Controller) ListByRequest(ctx *gin.Context) {
	tourRequestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	result, err := c.service.ListByTourRequest(ctx.Request.Context(), tourRequestID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bids retrieved", result, nil)
}

// ListMine handles GET /api/v1/venues/bids
func (c *Controller) ListMine(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	result, err := c.service.ListByVenueAccount(ctx.Request.Context(), accountID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bids retrieved", result, nil)
}

// PatchBid handles PATCH /api/v1/bids/:id and dispatches the state
// machine transition named by the action field.
func (c *Controller) PatchBid(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid bid ID", nil, nil)
		return
	}

	var payload PatchBidPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reqCtx := ctx.Request.Context()
	switch payload.Action {
	case "hold":
		bid, err := c.service.PlaceOnHold(reqCtx, id, accountID)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Bid placed on hold", bid, nil)

	case "accept":
		result, err := c.service.AcceptBid(reqCtx, id, accountID)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Bid accepted", result, nil)

	case "decline":
		bid, err := c.service.DeclineBid(reqCtx, id, accountID, payload.Reason)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Bid declined", bid, nil)

	case "cancel":
		bid, err := c.service.CancelBid(reqCtx, id, accountID)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Bid cancelled", bid, nil)
	}
}
