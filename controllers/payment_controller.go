package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aniruddhballal/VenPay-sub001/config"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
	"github.com/aniruddhballal/VenPay-sub001/models"
	"github.com/aniruddhballal/VenPay-sub001/utils"
	"github.com/aniruddhballal/VenPay-sub001/websocket"
)

const idempotencyKeyTTL = 24 * time.Hour

// PaymentController handles payment terms reads and partial payment
// submissions against accepted product requests
type PaymentController struct {
	DB    *mongo.Client
	Redis *redis.Client
	Hub   *websocket.Hub
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *mongo.Client, redisClient *redis.Client, hub *websocket.Hub) *PaymentController {
	return &PaymentController{DB: db, Redis: redisClient, Hub: hub}
}

// loadAcceptedRequest fetches a product request and verifies the caller is a
// party to it. Pending and declined requests have no payment section, so
// anything not accepted reads as not found.
func (pc *PaymentController) loadAcceptedRequest(ctx context.Context, c echo.Context, requestIDParam string) (*models.ProductRequest, *models.Response) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return nil, &models.Response{Status: http.StatusUnauthorized, Message: "Invalid token"}
	}

	requestObjectID, err := primitive.ObjectIDFromHex(requestIDParam)
	if err != nil {
		return nil, &models.Response{Status: http.StatusBadRequest, Message: "Invalid request ID format"}
	}

	var request models.ProductRequest
	err = config.GetCollection(pc.DB, "productRequests").FindOne(ctx, bson.M{"_id": requestObjectID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.Response{Status: http.StatusNotFound, Message: "Product request not found"}
		}
		return nil, &models.Response{Status: http.StatusInternalServerError, Message: "Failed to find product request"}
	}

	if request.CompanyID != userID && request.VendorID != userID {
		return nil, &models.Response{Status: http.StatusForbidden, Message: "Product request belongs to another account"}
	}

	if request.Status != "accepted" {
		return nil, &models.Response{Status: http.StatusNotFound, Message: "No payment request exists for this product request"}
	}

	return &request, nil
}

// GetPaymentStatus returns the payment terms of an accepted request along
// with display state derived at read time: remaining time until the
// deadline and whether the request is cleared
func (pc *PaymentController) GetPaymentStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	request, errResp := pc.loadAcceptedRequest(ctx, c, c.Param("requestId"))
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	var paymentRequest models.PaymentRequest
	err := config.GetCollection(pc.DB, "paymentRequests").FindOne(ctx, bson.M{"requestId": request.ID}).Decode(&paymentRequest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "No payment request exists for this product request",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payment request",
		})
	}

	status := models.PaymentStatus{
		PaymentRequest: paymentRequest,
		TotalPrice:     request.TotalPrice,
		TimeLeft:       utils.FormatTimeLeft(paymentRequest.Deadline, time.Now()),
		Cleared:        paymentRequest.AmountDue <= 0,
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment request retrieved successfully",
		Data:    status,
	})
}

// GetTransactions lists the partial payments recorded against a request,
// newest first
func (pc *PaymentController) GetTransactions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	request, errResp := pc.loadAcceptedRequest(ctx, c, c.Param("requestId"))
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	transactions, err := pc.listTransactions(ctx, request.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payment transactions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment transactions retrieved successfully",
		Data:    transactions,
	})
}

func (pc *PaymentController) listTransactions(ctx context.Context, requestID primitive.ObjectID) ([]models.PaymentTransaction, error) {
	collection := config.GetCollection(pc.DB, "paymentTransactions")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"requestId": requestID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []models.PaymentTransaction
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetPaymentQR returns a QR code image encoding the payment link for an
// accepted request
func (pc *PaymentController) GetPaymentQR(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	request, errResp := pc.loadAcceptedRequest(ctx, c, c.Param("requestId"))
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "https://venpay.app"
	}
	content := fmt.Sprintf("%s/payments/%s", appURL, request.ID.Hex())

	qrCode, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code",
		})
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code",
		})
	}

	base64QR := base64.StdEncoding.EncodeToString(buf.Bytes())
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment QR code generated successfully",
		Data: map[string]interface{}{
			"paymentLink": content,
			"qrCode":      "data:image/png;base64," + base64QR,
		},
	})
}

// SubmitPayment records a partial payment against an accepted request. The
// amount is validated against the total price and the remaining amount due,
// and the company's password is re-verified before any write. On success the
// response carries the refreshed amount due and transaction list so clients
// can update without a second round of fetches.
func (pc *PaymentController) SubmitPayment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if middleware.ExtractUserType(c) != "company" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only companies can submit payments",
		})
	}

	request, errResp := pc.loadAcceptedRequest(ctx, c, c.Param("requestId"))
	if errResp != nil {
		return c.JSON(errResp.Status, *errResp)
	}

	companyID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	if request.CompanyID != companyID {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only the requesting company can pay this request",
		})
	}

	var body models.SubmitPaymentBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	if err := utils.ValidatePaymentAmount(body.Amount, request.TotalPrice); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	// Re-verify the company's password; the session token is not enough
	// to move money
	var payer models.User
	err = config.GetCollection(pc.DB, "users").FindOne(ctx, bson.M{"_id": companyID}).Decode(&payer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify paying account",
		})
	}
	if err := utils.CheckPassword(body.Password, payer.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Incorrect password",
		})
	}

	paymentRequestsCollection := config.GetCollection(pc.DB, "paymentRequests")
	var paymentRequest models.PaymentRequest
	err = paymentRequestsCollection.FindOne(ctx, bson.M{"requestId": request.ID}).Decode(&paymentRequest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payment request",
		})
	}

	if paymentRequest.AmountDue <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payment request is already cleared",
		})
	}
	if body.Amount > paymentRequest.AmountDue {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("Payment amount cannot exceed the remaining amount due of %.2f", paymentRequest.AmountDue),
		})
	}

	transaction := models.PaymentTransaction{
		ID:        primitive.NewObjectID(),
		RequestID: request.ID,
		CompanyID: companyID,
		Amount:    body.Amount,
		CreatedAt: time.Now(),
	}

	// Idempotency guard: a replayed key returns the recorded transaction
	// instead of appending a second one. The key is released again on any
	// failure below so the client can retry with it.
	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		idempotencyKey = body.IdempotencyKey
	}
	var reservedKey string
	if idempotencyKey != "" && pc.Redis != nil {
		if _, err := uuid.Parse(idempotencyKey); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Idempotency key must be a valid UUID",
			})
		}

		redisKey := fmt.Sprintf("payment:idempotency:%s:%s", companyID.Hex(), idempotencyKey)
		set, err := pc.Redis.SetNX(ctx, redisKey, transaction.ID.Hex(), idempotencyKeyTTL).Result()
		if err == nil && !set {
			storedID, err := pc.Redis.Get(ctx, redisKey).Result()
			if err == nil {
				return pc.replayedPayment(ctx, c, request, storedID)
			}
		}
		if err == nil && set {
			reservedKey = redisKey
		}
	}

	// The balance check rides on the update filter: concurrent submissions
	// cannot both pass against the same amountDue snapshot, so the sum of
	// transactions can never exceed the total price
	result, err := paymentRequestsCollection.UpdateOne(ctx,
		bson.M{"_id": paymentRequest.ID, "amountDue": bson.M{"$gte": body.Amount}},
		bson.M{"$inc": bson.M{"amountDue": -body.Amount}},
	)
	if err != nil {
		pc.releaseIdempotencyKey(ctx, reservedKey)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update amount due",
		})
	}
	if result.ModifiedCount == 0 {
		pc.releaseIdempotencyKey(ctx, reservedKey)
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Payment amount cannot exceed the remaining amount due",
		})
	}

	_, err = config.GetCollection(pc.DB, "paymentTransactions").InsertOne(ctx, transaction)
	if err != nil {
		// Put the balance back so amountDue still equals total price minus
		// the recorded transactions
		_, incErr := paymentRequestsCollection.UpdateOne(ctx, bson.M{"_id": paymentRequest.ID}, bson.M{
			"$inc": bson.M{"amountDue": body.Amount},
		})
		if incErr != nil {
			log.Printf("Failed to restore amount due for request %s: %v", request.ID.Hex(), incErr)
		}
		pc.releaseIdempotencyKey(ctx, reservedKey)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record payment transaction",
		})
	}

	amountDue := paymentRequest.AmountDue - body.Amount
	var updated models.PaymentRequest
	if err := paymentRequestsCollection.FindOne(ctx, bson.M{"_id": paymentRequest.ID}).Decode(&updated); err == nil {
		amountDue = updated.AmountDue
	}
	transactions, err := pc.listTransactions(ctx, request.ID)
	if err != nil {
		transactions = []models.PaymentTransaction{transaction}
	}

	go func(tx models.PaymentTransaction, vendorID primitive.ObjectID, due float64) {
		utils.NotifyPayment(pc.DB, tx, vendorID, due)
		if err := pc.Hub.NotifyPaymentReceived(vendorID, tx); err != nil {
			// Vendor not connected, in-app notification covers it
		}
	}(transaction, request.VendorID, amountDue)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment recorded successfully",
		Data: models.PaymentResult{
			Transaction:  transaction,
			AmountDue:    amountDue,
			Cleared:      amountDue <= 0,
			Transactions: transactions,
		},
	})
}

// releaseIdempotencyKey frees a reserved key after a failed submission so the
// client can retry with the same key
func (pc *PaymentController) releaseIdempotencyKey(ctx context.Context, key string) {
	if key == "" || pc.Redis == nil {
		return
	}
	if err := pc.Redis.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to release idempotency key %s: %v", key, err)
	}
}

// replayedPayment answers a duplicate idempotency key with the already
// recorded transaction and the current derived state
func (pc *PaymentController) replayedPayment(ctx context.Context, c echo.Context, request *models.ProductRequest, storedTxID string) error {
	txObjectID, err := primitive.ObjectIDFromHex(storedTxID)
	if err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Payment with this idempotency key is already being processed",
		})
	}

	var transaction models.PaymentTransaction
	err = config.GetCollection(pc.DB, "paymentTransactions").FindOne(ctx, bson.M{"_id": txObjectID}).Decode(&transaction)
	if err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Payment with this idempotency key is already being processed",
		})
	}

	var paymentRequest models.PaymentRequest
	err = config.GetCollection(pc.DB, "paymentRequests").FindOne(ctx, bson.M{"requestId": request.ID}).Decode(&paymentRequest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payment request",
		})
	}

	transactions, err := pc.listTransactions(ctx, request.ID)
	if err != nil {
		transactions = []models.PaymentTransaction{transaction}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment already recorded for this idempotency key",
		Data: models.PaymentResult{
			Transaction:  transaction,
			AmountDue:    paymentRequest.AmountDue,
			Cleared:      paymentRequest.AmountDue <= 0,
			Transactions: transactions,
		},
	})
}
