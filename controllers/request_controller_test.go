package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aniruddhballal/VenPay-sub001/models"
	"github.com/aniruddhballal/VenPay-sub001/websocket"
)

// The guard branches below all reject before any database access, so a nil
// mongo client is safe here.

func TestProcessDecisionRequiresVendor(t *testing.T) {
	rc := NewRequestController(nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPut, "/api/requests/abc/decision", `{"status":"accepted"}`, primitive.NewObjectID(), "company")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := rc.ProcessDecision(c); err != nil {
		t.Fatalf("ProcessDecision returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestProcessDecisionRejectsMalformedRequestID(t *testing.T) {
	rc := NewRequestController(nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPut, "/api/requests/not-a-hex/decision", `{"status":"accepted"}`, primitive.NewObjectID(), "vendor")
	c.SetParamNames("id")
	c.SetParamValues("not-a-hex")

	if err := rc.ProcessDecision(c); err != nil {
		t.Fatalf("ProcessDecision returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestProcessDecisionRejectsUnknownStatus(t *testing.T) {
	rc := NewRequestController(nil, websocket.NewHub())

	for _, status := range []string{"maybe", "ACCEPTED", ""} {
		t.Run("status="+status, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPut, "/api/requests/abc/decision", `{"status":"`+status+`"}`, primitive.NewObjectID(), "vendor")
			c.SetParamNames("id")
			c.SetParamValues(primitive.NewObjectID().Hex())

			if err := rc.ProcessDecision(c); err != nil {
				t.Fatalf("ProcessDecision returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}

			var resp models.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Message != "Invalid status. Must be 'accepted' or 'declined'" {
				t.Errorf("unexpected message: %q", resp.Message)
			}
		})
	}
}

func TestCreateRequestRequiresCompany(t *testing.T) {
	rc := NewRequestController(nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPost, "/api/requests", `{"productId":"abc","quantity":1}`, primitive.NewObjectID(), "vendor")

	if err := rc.CreateRequest(c); err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestCreateRequestRejectsMalformedProductID(t *testing.T) {
	rc := NewRequestController(nil, websocket.NewHub())

	c, rec := newTestContext(http.MethodPost, "/api/requests", `{"productId":"not-a-hex","quantity":2}`, primitive.NewObjectID(), "company")

	if err := rc.CreateRequest(c); err != nil {
		t.Fatalf("CreateRequest returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreateRequestRejectsNonPositiveQuantity(t *testing.T) {
	rc := NewRequestController(nil, websocket.NewHub())

	productID := primitive.NewObjectID().Hex()
	for _, body := range []string{
		`{"productId":"` + productID + `","quantity":0}`,
		`{"productId":"` + productID + `","quantity":-3}`,
	} {
		c, rec := newTestContext(http.MethodPost, "/api/requests", body, primitive.NewObjectID(), "company")

		if err := rc.CreateRequest(c); err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status %d, got %d", body, http.StatusBadRequest, rec.Code)
		}
	}
}
