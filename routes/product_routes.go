package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/aniruddhballal/VenPay-sub001/controllers"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
)

// RegisterProductRoutes sets up product listing routes
func RegisterProductRoutes(e *echo.Echo, productController *controllers.ProductController) {
	productGroup := e.Group("/api/products")
	productGroup.Use(middleware.JWTMiddleware())

	productGroup.POST("", productController.CreateProduct)
	productGroup.GET("", productController.GetProducts)
	productGroup.GET("/vendor", productController.GetVendorProducts)
}
