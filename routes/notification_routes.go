package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aniruddhballal/VenPay-sub001/controllers"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
	"github.com/aniruddhballal/VenPay-sub001/utils"
	"github.com/aniruddhballal/VenPay-sub001/websocket"
)

// RegisterNotificationRoutes sets up in-app notification and websocket routes
func RegisterNotificationRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	notificationController := controllers.NewNotificationController(db)

	notificationGroup := e.Group("/api/notifications")
	notificationGroup.Use(middleware.JWTMiddleware())

	notificationGroup.GET("", notificationController.GetNotifications)
	notificationGroup.PUT("/:id/read", notificationController.MarkNotificationRead)

	wsGroup := e.Group("/api/ws")
	wsGroup.Use(middleware.JWTMiddleware())
	wsGroup.GET("", func(c echo.Context) error {
		userID, err := utils.GetUserIDFromToken(c)
		if err != nil {
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Invalid token")
		}
		return websocket.HandleWebSocket(c, hub, userID)
	})
}
