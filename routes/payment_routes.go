package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/aniruddhballal/VenPay-sub001/controllers"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
)

// RegisterPaymentRoutes sets up payment terms and transaction routes
func RegisterPaymentRoutes(e *echo.Echo, paymentController *controllers.PaymentController) {
	paymentGroup := e.Group("/api/payments")
	paymentGroup.Use(middleware.JWTMiddleware())

	paymentGroup.GET("/:requestId", paymentController.GetPaymentStatus)
	paymentGroup.GET("/:requestId/transactions", paymentController.GetTransactions)
	paymentGroup.GET("/:requestId/qr", paymentController.GetPaymentQR)
	paymentGroup.POST("/:requestId", paymentController.SubmitPayment)
}
