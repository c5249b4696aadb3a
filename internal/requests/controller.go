package requests

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

func artistFromContext(ctx *gin.Context) (uuid.UUID, bool) {
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

// CreateRequest handles POST /api/v1/requests
func (c *Controller) CreateRequest(ctx *gin.Context) {
	artistID, ok := artistFromContext(ctx)
	if !ok {
		return
	}

	var payload CreateRequestPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	req, err := c.service.CreateRequest(ctx.Request.Context(), artistID, payload)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Tour request created", req, nil)
}

// GetRequest handles GET /api/v1/requests/:id
func (c *Controller) GetRequest(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	req, err := c.service.GetRequest(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour request retrieved", req, nil)
}

// ListActive handles GET /api/v1/requests/active
func (c *Controller) ListActive(ctx *gin.Context) {
	result, err := c.service.ListActive(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Active tour requests", result, nil)
}

// ListMine handles GET /api/v1/artists/requests
func (c *Controller) ListMine(ctx *gin.Context) {
	artistID, ok := artistFromContext(ctx)
	if !ok {
		return
	}

	result, err := c.service.ListByArtist(ctx.Request.Context(), artistID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour requests retrieved", result, nil)
}

// patchAction is the PATCH body discriminator shared by update/pause/resume
type patchAction struct {
	Action string `json:"action" binding:"omitempty,oneof=update pause resume"`
	UpdateRequestPayload
}

// PatchRequest handles PATCH /api/v1/requests/:id
func (c *Controller) PatchRequest(ctx *gin.Context) {
	artistID, ok := artistFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	var body patchAction
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	var req *TourRequest
	switch body.Action {
	case "pause":
		req, err = c.service.PauseRequest(ctx.Request.Context(), id, artistID)
	case "resume":
		req, err = c.service.ResumeRequest(ctx.Request.Context(), id, artistID)
	default:
		req, err = c.service.UpdateRequest(ctx.Request.Context(), id, artistID, body.UpdateRequestPayload)
	}

	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour request updated", req, nil)
}

// DeleteRequest handles DELETE /api/v1/requests/:id
func (c *Controller) DeleteRequest(ctx *gin.Context) {
	artistID, ok := artistFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request ID", nil, nil)
		return
	}

	cancelled, err := c.service.DeleteRequest(ctx.Request.Context(), id, artistID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tour request deleted", gin.H{
		"cancelled_bids": cancelled,
	}, nil)
}
