package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/aniruddhballal/VenPay-sub001/config"
	"github.com/aniruddhballal/VenPay-sub001/models"
)

// SaveNotification saves a notification to the database
func SaveNotification(db *mongo.Client, userID primitive.ObjectID, title, message, notifType string, data interface{}) error {
	collection := config.GetCollection(db, "notifications")

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Data:      data,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	_, err := collection.InsertOne(context.Background(), notification)
	return err
}

// SendEmail sends a plain-text email using the configured SMTP server.
// Failures are logged, not returned: notification mail never blocks a
// confirmed mutation.
func SendEmail(to, subject, body string) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	if smtpHost == "" || smtpUser == "" {
		log.Printf("SMTP not configured, skipping email to %s", to)
		return
	}

	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
	}
}

// NotifyDecision notifies the requesting company that its product request
// was accepted or declined, by email and in-app notification
func NotifyDecision(db *mongo.Client, request models.ProductRequest, productName string) {
	var company models.User
	err := config.GetCollection(db, "users").FindOne(context.Background(), bson.M{"_id": request.CompanyID}).Decode(&company)
	if err != nil {
		log.Printf("Failed to find company for decision notification: %v", err)
		return
	}

	subject := fmt.Sprintf("Product Request %s", request.Status)
	body := fmt.Sprintf("Dear %s,\n\nYour request for %d x %s has been %s.", company.FullName, request.Quantity, productName, request.Status)
	if request.Status == "accepted" && request.PaymentDeadline != nil {
		body += fmt.Sprintf("\nPayment deadline: %s", request.PaymentDeadline.In(IST).Format("02 Jan 2006 15:04:05 MST"))
	}
	body += "\n\nBest regards,\nVenPay"

	SendEmail(company.Email, subject, body)

	_ = SaveNotification(db, company.ID, subject, body, "request_decision", map[string]interface{}{
		"requestId": request.ID.Hex(),
		"status":    request.Status,
	})
}

// NotifyPayment notifies the vendor that a partial payment was recorded
// against one of its accepted requests
func NotifyPayment(db *mongo.Client, tx models.PaymentTransaction, vendorID primitive.ObjectID, amountDue float64) {
	var vendor models.User
	err := config.GetCollection(db, "users").FindOne(context.Background(), bson.M{"_id": vendorID}).Decode(&vendor)
	if err != nil {
		log.Printf("Failed to find vendor for payment notification: %v", err)
		return
	}

	subject := "Payment Received"
	body := fmt.Sprintf("Dear %s,\n\nA payment of %.2f was recorded against request %s.\nRemaining amount due: %.2f\n\nBest regards,\nVenPay",
		vendor.FullName, tx.Amount, tx.RequestID.Hex(), amountDue)

	SendEmail(vendor.Email, subject, body)

	_ = SaveNotification(db, vendorID, subject, body, "payment_received", map[string]interface{}{
		"requestId": tx.RequestID.Hex(),
		"amount":    tx.Amount,
		"amountDue": amountDue,
	})
}
