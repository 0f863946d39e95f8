package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

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

// RequestController handles the product request lifecycle: creation by
// companies and accept/decline decisions by vendors
type RequestController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

// NewRequestController creates a new request controller
func NewRequestController(db *mongo.Client, hub *websocket.Hub) *RequestController {
	return &RequestController{DB: db, Hub: hub}
}

// CreateRequest creates a pending product request for the authenticated
// company. Unit price is copied from the product and the total price is
// computed here; clients never supply either.
func (rc *RequestController) CreateRequest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if middleware.ExtractUserType(c) != "company" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only companies can create product requests",
		})
	}

	companyID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var body models.CreateRequestBody
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

	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	var product models.Product
	err = config.GetCollection(rc.DB, "products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find product",
		})
	}

	request := models.ProductRequest{
		ID:         primitive.NewObjectID(),
		ProductID:  product.ID,
		CompanyID:  companyID,
		VendorID:   product.VendorID,
		Quantity:   body.Quantity,
		UnitPrice:  product.Price,
		TotalPrice: float64(body.Quantity) * product.Price,
		Message:    utils.SanitizeInput(body.Message),
		Status:     "pending",
		CreatedAt:  time.Now(),
	}

	_, err = config.GetCollection(rc.DB, "productRequests").InsertOne(ctx, request)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product request",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product request created successfully",
		Data:    request,
	})
}

// GetCompanyRequests lists requests created by the authenticated company
func (rc *RequestController) GetCompanyRequests(c echo.Context) error {
	return rc.listRequests(c, "companyId")
}

// GetVendorRequests lists requests addressed to the authenticated vendor
func (rc *RequestController) GetVendorRequests(c echo.Context) error {
	return rc.listRequests(c, "vendorId")
}

func (rc *RequestController) listRequests(c echo.Context, ownerField string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	collection := config.GetCollection(rc.DB, "productRequests")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{ownerField: userID}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve product requests",
		})
	}
	defer cursor.Close(ctx)

	var requests []models.ProductRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode product requests",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product requests retrieved successfully",
		Data:    requests,
	})
}

// ProcessDecision handles the vendor's accept or decline decision on a
// pending request. Accepting creates the payment terms in the same handler:
// a declined request gets a single status mutation, an accepted one gets the
// status mutation plus a PaymentRequest carrying either the vendor-chosen
// deadline (required when the request has a payback-duration message) or the
// Net30 default. If the PaymentRequest insert fails the status is rolled
// back to pending so an accepted request without terms is never observable.
func (rc *RequestController) ProcessDecision(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	vendorID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	if middleware.ExtractUserType(c) != "vendor" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only vendors can process product requests",
		})
	}

	requestID := c.Param("id")
	requestObjectID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request ID format",
		})
	}

	var body models.DecisionBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid status. Must be 'accepted' or 'declined'",
		})
	}

	requestsCollection := config.GetCollection(rc.DB, "productRequests")

	var request models.ProductRequest
	err = requestsCollection.FindOne(ctx, bson.M{"_id": requestObjectID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Product request not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find product request",
		})
	}

	if request.VendorID != vendorID {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Product request belongs to another vendor",
		})
	}

	// Status transitions are terminal after a decision
	if request.Status != "pending" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Product request is already processed",
		})
	}

	now := time.Now()

	// Resolve the deadline before mutating anything. A request whose message
	// asks for payback terms requires an explicit calendar date; otherwise
	// the Net30 default applies and any submitted date is ignored.
	var deadline time.Time
	if body.Status == "accepted" {
		if request.Message != "" {
			deadline, err = utils.ParseDeadlineDate(body.Deadline, now)
			if err != nil {
				return c.JSON(http.StatusBadRequest, models.Response{
					Status:  http.StatusBadRequest,
					Message: err.Error(),
				})
			}
		} else {
			deadline = utils.Net30Deadline(now)
		}
	}

	update := bson.M{"$set": bson.M{
		"status":      body.Status,
		"processedAt": now,
	}}
	if body.Status == "accepted" {
		update["$set"].(bson.M)["paymentDeadline"] = deadline
	}

	result, err := requestsCollection.UpdateOne(ctx, bson.M{"_id": requestObjectID, "status": "pending"}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update product request",
		})
	}
	// A concurrent decision can win between the read above and this update;
	// the filter makes exactly one caller match
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Product request is already processed",
		})
	}

	request.Status = body.Status
	request.ProcessedAt = &now

	if body.Status == "accepted" {
		request.PaymentDeadline = &deadline

		paymentRequest := models.PaymentRequest{
			ID:        primitive.NewObjectID(),
			RequestID: request.ID,
			CompanyID: request.CompanyID,
			VendorID:  request.VendorID,
			Deadline:  deadline,
			AmountDue: request.TotalPrice,
			CreatedAt: now,
		}

		_, err = config.GetCollection(rc.DB, "paymentRequests").InsertOne(ctx, paymentRequest)
		if err != nil {
			// Roll the status back so the request is never left accepted
			// without payment terms. The filter is scoped to our own write
			// so the rollback can never undo another caller's decision.
			_, rollbackErr := requestsCollection.UpdateOne(ctx, bson.M{"_id": requestObjectID, "status": body.Status}, bson.M{
				"$set":   bson.M{"status": "pending"},
				"$unset": bson.M{"paymentDeadline": "", "processedAt": ""},
			})
			if rollbackErr != nil {
				log.Printf("Failed to roll back request %s after payment request insert error: %v", requestID, rollbackErr)
			}
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to create payment request",
			})
		}
	}

	// Notify the company; delivery failures never affect the decision
	go func(req models.ProductRequest) {
		var product models.Product
		productName := "the requested product"
		if err := config.GetCollection(rc.DB, "products").FindOne(context.Background(), bson.M{"_id": req.ProductID}).Decode(&product); err == nil {
			productName = product.Name
		}
		utils.NotifyDecision(rc.DB, req, productName)

		if err := rc.Hub.NotifyRequestDecision(req.CompanyID, req); err != nil {
			// Company not connected, in-app notification covers it
		}
	}(request)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("Product request %s successfully", body.Status),
		Data:    request,
	})
}
