package dto

import "time"

const EventOrderPlaced = "OrderPlaced"

type OrderPlacedEvent struct {
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Payload   OrderPlacedPayload `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
}

type OrderPlacedPayload struct {
	OrderNumber  string `json:"order_number"`
	OrderType    string `json:"order_type"`
	Quantity10ml int    `json:"quantity_10ml"`
	Quantity50ml int    `json:"quantity_50ml"`
	Subtotal     int64  `json:"subtotal"`
	Shipping     int64  `json:"shipping"`
	Total        int64  `json:"total"`
}
