package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRequest holds the payment terms of an accepted product request:
// deadline and the authoritative remaining amount due. One-to-one with
// an accepted ProductRequest.
type PaymentRequest struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RequestID primitive.ObjectID `json:"requestId" bson:"requestId"`
	CompanyID primitive.ObjectID `json:"companyId" bson:"companyId"`
	VendorID  primitive.ObjectID `json:"vendorId" bson:"vendorId"`
	Deadline  time.Time          `json:"deadline" bson:"deadline"`
	AmountDue float64            `json:"amountDue" bson:"amountDue"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// PaymentStatus is the derived view returned to clients: terms plus
// display state computed at read time
type PaymentStatus struct {
	PaymentRequest PaymentRequest `json:"paymentRequest"`
	TotalPrice     float64        `json:"totalPrice"`
	TimeLeft       string         `json:"timeLeft"`
	Cleared        bool           `json:"cleared"`
}
