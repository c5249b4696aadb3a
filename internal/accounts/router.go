package accounts

import (
	"github.com/gin-gonic/gin"
)

// SetupAccountRoutes configures account registration and login routes
func SetupAccountRoutes(rg *gin.RouterGroup, controller *Controller) {
	accounts := rg.Group("/accounts")
	{
		accounts.POST("/register", controller.Register)
		accounts.POST("/login", controller.Login)
		accounts.POST("/refresh", controller.Refresh)
	}
}
