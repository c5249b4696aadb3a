package inquiries

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

// CreateInquiry handles POST /api/v1/inquiries
func (c *Controller) CreateInquiry(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	var req CreateInquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	inquiry, err := c.service.CreateInquiry(ctx.Request.Context(), accountID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Inquiry sent", inquiry, nil)
}

// GetInquiry handles GET /api/v1/inquiries/:id
func (c *Controller) GetInquiry(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid inquiry ID", nil, nil)
		return
	}

	inquiry, err := c.service.GetInquiry(ctx.Request.Context(), id, accountID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Inquiry retrieved", inquiry, nil)
}

// ListInquiries handles GET /api/v1/inquiries
func (c *Controller) ListInquiries(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	result, err := c.service.ListForAccount(ctx.Request.Context(), accountID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Inquiries retrieved", result, nil)
}

// Respond handles POST /api/v1/inquiries/:id/responses
func (c *Controller) Respond(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid inquiry ID", nil, nil)
		return
	}

	var req RespondRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	inquiry, err := c.service.Respond(ctx.Request.Context(), id, accountID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Response added", inquiry, nil)
}

// Resolve handles PATCH /api/v1/inquiries/:id
func (c *Controller) Resolve(ctx *gin.Context) {
	accountID, ok := accountFromContext(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid inquiry ID", nil, nil)
		return
	}

	var req ResolveInquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	inquiry, err := c.service.Resolve(ctx.Request.Context(), id, accountID, req.Action)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Inquiry resolved", inquiry, nil)
}
