package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestDecisionBodyValidation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		body    DecisionBody
		wantErr bool
	}{
		{"accepted", DecisionBody{Status: "accepted"}, false},
		{"declined", DecisionBody{Status: "declined"}, false},
		{"accepted with deadline", DecisionBody{Status: "accepted", Deadline: "2026-10-01"}, false},
		{"missing status", DecisionBody{}, true},
		{"unknown status", DecisionBody{Status: "maybe"}, true},
		{"pending is not a decision", DecisionBody{Status: "pending"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.body)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%+v) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitPaymentBodyValidation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		body    SubmitPaymentBody
		wantErr bool
	}{
		{"valid", SubmitPaymentBody{Amount: 50, Password: "secret"}, false},
		{"zero amount", SubmitPaymentBody{Amount: 0, Password: "secret"}, true},
		{"negative amount", SubmitPaymentBody{Amount: -1, Password: "secret"}, true},
		{"empty password", SubmitPaymentBody{Amount: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.body)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%+v) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			}
		})
	}
}

func TestSignupRequestValidation(t *testing.T) {
	v := validator.New()

	valid := SignupRequest{Email: "a@b.com", Password: "longenough", UserType: "company"}
	if err := v.Struct(valid); err != nil {
		t.Errorf("expected valid signup, got %v", err)
	}

	badType := SignupRequest{Email: "a@b.com", Password: "longenough", UserType: "admin"}
	if err := v.Struct(badType); err == nil {
		t.Error("expected error for unknown user type")
	}

	shortPassword := SignupRequest{Email: "a@b.com", Password: "short", UserType: "vendor"}
	if err := v.Struct(shortPassword); err == nil {
		t.Error("expected error for short password")
	}
}
