package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aniruddhballal/VenPay-sub001/models"
	"github.com/aniruddhballal/VenPay-sub001/websocket"
)

// These cover the rejection branches that run before any database or Redis
// access, so the controller is wired with nil clients.

func TestSubmitPaymentRequiresCompany(t *testing.T) {
	pc := NewPaymentController(nil, nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPost, "/api/payments/abc", `{"amount":50,"password":"secret"}`, primitive.NewObjectID(), "vendor")
	c.SetParamNames("requestId")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := pc.SubmitPayment(c); err != nil {
		t.Fatalf("SubmitPayment returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestSubmitPaymentRequiresToken(t *testing.T) {
	pc := NewPaymentController(nil, nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPost, "/api/payments/abc", `{"amount":50,"password":"secret"}`, primitive.NilObjectID, "")
	c.SetParamNames("requestId")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := pc.SubmitPayment(c); err != nil {
		t.Fatalf("SubmitPayment returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestSubmitPaymentRejectsMalformedRequestID(t *testing.T) {
	pc := NewPaymentController(nil, nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPost, "/api/payments/not-a-hex", `{"amount":50,"password":"secret"}`, primitive.NewObjectID(), "company")
	c.SetParamNames("requestId")
	c.SetParamValues("not-a-hex")

	if err := pc.SubmitPayment(c); err != nil {
		t.Fatalf("SubmitPayment returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Invalid request ID format" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestGetPaymentStatusRequiresToken(t *testing.T) {
	pc := NewPaymentController(nil, nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodGet, "/api/payments/abc", "", primitive.NilObjectID, "")
	c.SetParamNames("requestId")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := pc.GetPaymentStatus(c); err != nil {
		t.Fatalf("GetPaymentStatus returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestGetPaymentStatusRejectsMalformedRequestID(t *testing.T) {
	pc := NewPaymentController(nil, nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodGet, "/api/payments/not-a-hex", "", primitive.NewObjectID(), "company")
	c.SetParamNames("requestId")
	c.SetParamValues("not-a-hex")

	if err := pc.GetPaymentStatus(c); err != nil {
		t.Fatalf("GetPaymentStatus returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGetTransactionsRejectsMalformedRequestID(t *testing.T) {
	pc := NewPaymentController(nil, nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodGet, "/api/payments/not-a-hex/transactions", "", primitive.NewObjectID(), "vendor")
	c.SetParamNames("requestId")
	c.SetParamValues("not-a-hex")

	if err := pc.GetTransactions(c); err != nil {
		t.Fatalf("GetTransactions returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
