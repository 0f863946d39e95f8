package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRequest represents a company's request to purchase a vendor's
// product in a given quantity
type ProductRequest struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProductID       primitive.ObjectID `json:"productId" bson:"productId"`
	CompanyID       primitive.ObjectID `json:"companyId" bson:"companyId"`
	VendorID        primitive.ObjectID `json:"vendorId" bson:"vendorId"`
	Quantity        int                `json:"quantity" bson:"quantity"`
	UnitPrice       float64            `json:"unitPrice" bson:"unitPrice"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	Message         string             `json:"message,omitempty" bson:"message,omitempty"` // payback-duration hint
	Status          string             `json:"status" bson:"status"`                       // "pending", "accepted", "declined"
	PaymentDeadline *time.Time         `json:"paymentDeadline,omitempty" bson:"paymentDeadline,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	ProcessedAt     *time.Time         `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

// CreateRequestBody represents the request creation body (company side)
type CreateRequestBody struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Message   string `json:"message"`
}

// DecisionBody represents the vendor's accept/decline decision.
// Deadline is a calendar date (YYYY-MM-DD); it is required when accepting
// a request that carries a payback-duration message and ignored otherwise.
type DecisionBody struct {
	Status   string `json:"status" validate:"required,oneof=accepted declined"`
	Deadline string `json:"deadline,omitempty"`
}
