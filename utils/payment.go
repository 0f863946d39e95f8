// utils/payment.go
package utils

import (
	"errors"
	"fmt"

	"github.com/aniruddhballal/VenPay-sub001/models"
)

// ValidatePaymentAmount enforces the submission bounds: the amount must be
// positive and cannot exceed the request's total price. Checked before any
// credential verification or write is attempted.
func ValidatePaymentAmount(amount, totalPrice float64) error {
	if amount <= 0 {
		return errors.New("payment amount must be greater than zero")
	}
	if amount > totalPrice {
		return fmt.Errorf("payment amount cannot exceed the total price of %.2f", totalPrice)
	}
	return nil
}

// SumTransactions returns the total of all confirmed partial payments
func SumTransactions(transactions []models.PaymentTransaction) float64 {
	var sum float64
	for _, tx := range transactions {
		sum += tx.Amount
	}
	return sum
}

// AmountDue derives the remaining balance: total price minus the sum of
// confirmed transactions
func AmountDue(totalPrice float64, transactions []models.PaymentTransaction) float64 {
	return totalPrice - SumTransactions(transactions)
}
