package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentTransaction is one partial payment applied against a payment
// request. Records are append-only; their sum never exceeds the product
// request's total price.
type PaymentTransaction struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RequestID primitive.ObjectID `json:"requestId" bson:"requestId"`
	CompanyID primitive.ObjectID `json:"companyId" bson:"companyId"`
	Amount    float64            `json:"amount" bson:"amount"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SubmitPaymentBody represents the payment submission body. Password is
// re-entered for confirmation; it is checked against the paying user's
// stored hash, not the session token.
type SubmitPaymentBody struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Password       string  `json:"password" validate:"required"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
}

// PaymentResult is returned after a confirmed payment so clients can
// refresh the affected request's derived state without a second fetch
type PaymentResult struct {
	Transaction  PaymentTransaction   `json:"transaction"`
	AmountDue    float64              `json:"amountDue"`
	Cleared      bool                 `json:"cleared"`
	Transactions []PaymentTransaction `json:"transactions"`
}
