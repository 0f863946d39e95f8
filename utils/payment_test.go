package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aniruddhballal/VenPay-sub001/models"
)

func TestValidatePaymentAmount(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		totalPrice float64
		wantErr    bool
	}{
		{"valid partial payment", 50, 100, false},
		{"full payment", 100, 100, false},
		{"zero amount", 0, 100, true},
		{"negative amount", -5, 100, true},
		{"amount above total", 100.01, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentAmount(tt.amount, tt.totalPrice)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaymentAmount(%v, %v) error = %v, wantErr %v", tt.amount, tt.totalPrice, err, tt.wantErr)
			}
		})
	}
}

func TestAmountDue(t *testing.T) {
	requestID := primitive.NewObjectID()
	companyID := primitive.NewObjectID()

	makeTx := func(amount float64) models.PaymentTransaction {
		return models.PaymentTransaction{
			ID:        primitive.NewObjectID(),
			RequestID: requestID,
			CompanyID: companyID,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
	}

	t.Run("no transactions", func(t *testing.T) {
		if due := AmountDue(500, nil); due != 500 {
			t.Errorf("AmountDue() = %v, want 500", due)
		}
	})

	t.Run("partial payments accumulate", func(t *testing.T) {
		txs := []models.PaymentTransaction{makeTx(100), makeTx(150.50)}
		if due := AmountDue(500, txs); due != 249.50 {
			t.Errorf("AmountDue() = %v, want 249.50", due)
		}
	})

	t.Run("cleared request", func(t *testing.T) {
		txs := []models.PaymentTransaction{makeTx(200), makeTx(300)}
		if due := AmountDue(500, txs); due != 0 {
			t.Errorf("AmountDue() = %v, want 0", due)
		}
	})
}

func TestSumTransactions(t *testing.T) {
	txs := []models.PaymentTransaction{
		{Amount: 10},
		{Amount: 20},
		{Amount: 30},
	}
	if sum := SumTransactions(txs); sum != 60 {
		t.Errorf("SumTransactions() = %v, want 60", sum)
	}
	if sum := SumTransactions(nil); sum != 0 {
		t.Errorf("SumTransactions(nil) = %v, want 0", sum)
	}
}
