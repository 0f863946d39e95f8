package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/aniruddhballal/VenPay-sub001/controllers"
)

// RegisterAuthRoutes sets up all public authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/login", authController.Login)
}
