package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderAdded      = "OrderAdded"
	EventOrderRemoved    = "OrderRemoved"
	EventQuantityUpdated = "OrderQuantityUpdated"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // usually cart_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderAddedPayload struct {
	OrderID       string  `json:"order_id"`
	CartID        string  `json:"cart_id"`
	FoodListingID string  `json:"food_listing_id"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

type OrderRemovedPayload struct {
	OrderID string `json:"order_id"`
	CartID  string `json:"cart_id"`
}

type QuantityUpdatedPayload struct {
	OrderID  string `json:"order_id"`
	Quantity int    `json:"quantity"`
}
