package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/aniruddhballal/VenPay-sub001/controllers"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
)

// RegisterRequestRoutes sets up the product request lifecycle routes
func RegisterRequestRoutes(e *echo.Echo, requestController *controllers.RequestController) {
	requestGroup := e.Group("/api/requests")
	requestGroup.Use(middleware.JWTMiddleware())

	requestGroup.POST("", requestController.CreateRequest)
	requestGroup.GET("/company", requestController.GetCompanyRequests)
	requestGroup.GET("/vendor", requestController.GetVendorRequests)
	requestGroup.PUT("/:id/decision", requestController.ProcessDecision)
}
