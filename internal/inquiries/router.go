package inquiries

import (
	"tourboard/internal/shared/config"
	"tourboard/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupInquiryRoutes configures booking inquiry routes
func SetupInquiryRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	inquiries := rg.Group("/inquiries")
	inquiries.Use(middleware.JWTAuth(cfg))
	{
		inquiries.POST("", controller.CreateInquiry)
		inquiries.GET("", controller.ListInquiries)
		inquiries.GET("/:id", controller.GetInquiry)
		inquiries.POST("/:id/responses", controller.Respond)
		inquiries.PATCH("/:id", controller.Resolve)
	}
}
