package accounts

import (
	"errors"
	"net/http"

	"tourboard/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Register handles POST /api/v1/accounts/register
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrAccountAlreadyExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Registration failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Account created", resp, nil)
}

// Login handles POST /api/v1/accounts/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Login failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Logged in", resp, nil)
}

// Refresh handles POST /api/v1/accounts/refresh
func (c *Controller) Refresh(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tokens, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed", tokens, nil)
}
