package middleware

import (
	"net/http"
	"strings"

	"tourboard/internal/shared/config"
	"tourboard/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	CtxAccountID   = "account_id"
	CtxAccountType = "account_type"
	CtxEmail       = "account_email"
)

// JWTAuth creates a JWT authentication middleware
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
				response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
				c.Abort()
				return
			}
			c.Set(CtxAccountID, claims["account_id"])
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxAccountType, claims["account_type"])
		}

		c.Next()
	}
}

// RequireAccountType checks that the authenticated party is one of the
// given account types (ARTIST or VENUE).
func RequireAccountType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountType, exists := c.Get(CtxAccountType)
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "account type not found in context", nil, nil)
			c.Abort()
			return
		}

		at, _ := accountType.(string)
		for _, t := range types {
			if at == t {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		c.Abort()
	}
}

// AccountID returns the authenticated account id from the gin context.
func AccountID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxAccountID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// AccountType returns the authenticated account type from the gin context.
func AccountType(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxAccountType)
	if !exists {
		return "", false
	}
	t, ok := v.(string)
	return t, ok && t != ""
}
