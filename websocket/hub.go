package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Define notification types
const (
	NotificationTypeRequestDecision = "request_decision"
	NotificationTypePaymentReceived = "payment_received"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"userID,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	UserID primitive.ObjectID
	Conn   *websocket.Conn
}

// Hub maintains the set of active clients keyed by user id
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if client.UserID != primitive.NilObjectID {
				h.clients[client.UserID] = client
			}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID primitive.ObjectID, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user not connected")
	}

	return client.Conn.WriteJSON(notification)
}

// NotifyRequestDecision pushes a request status change to the company
func (h *Hub) NotifyRequestDecision(companyID primitive.ObjectID, requestData interface{}) error {
	notification := Notification{
		Type:    NotificationTypeRequestDecision,
		Message: "Your product request status has been updated",
		Data:    requestData,
	}

	return h.SendToUser(companyID, notification)
}

// NotifyPaymentReceived pushes a recorded payment to the vendor
func (h *Hub) NotifyPaymentReceived(vendorID primitive.ObjectID, paymentData interface{}) error {
	notification := Notification{
		Type:    NotificationTypePaymentReceived,
		Message: "A payment was recorded against one of your requests",
		Data:    paymentData,
	}

	return h.SendToUser(vendorID, notification)
}
