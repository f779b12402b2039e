package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arhamf/food-delivery-api/internal/carts"
	kafkax "github.com/arhamf/food-delivery-api/internal/kafka"
	"github.com/arhamf/food-delivery-api/internal/orders"
	"github.com/arhamf/food-delivery-api/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type OrdersHandler struct {
	Ledger  *orders.Ledger
	Added   *kafkax.Producer
	Removed *kafkax.Producer
	Qty     *kafkax.Producer
	Redis   *redis.Client
	Service string
	Log     *slog.Logger
}

type addOrderReq struct {
	CartID        string  `json:"cartId"`
	FoodListingID string  `json:"foodListingId"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

type removeOrderReq struct {
	OrderID string `json:"orderId"`
	CartID  string `json:"cartId"`
}

type updateQuantityReq struct {
	OrderID  string `json:"orderId"`
	Quantity int    `json:"quantity"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/add-order", h.addOrder)
	r.Delete("/remove-order", h.removeOrder)
	r.Put("/update-order-quantity", h.updateOrderQuantity)
	r.Get("/get-food-listing-orders", h.listOrders)
}

func (h *OrdersHandler) addOrder(w http.ResponseWriter, r *http.Request) {
	var req addOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.CartID == "" || req.FoodListingID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx := r.Context()
	o, err := h.Ledger.Add(ctx, req.CartID, req.FoodListingID, req.Quantity, req.Price)
	if err != nil {
		if errors.Is(err, carts.ErrCartNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
			return
		}
		h.Log.Error("add order", "cart_id", req.CartID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	cacheDel(ctx, h.Redis, fmt.Sprintf(redisx.KeyCart, req.CartID))
	h.publish(h.Added, orders.EventOrderAdded, req.CartID, orders.OrderAddedPayload{
		OrderID:       o.ID.Hex(),
		CartID:        req.CartID,
		FoodListingID: req.FoodListingID,
		Quantity:      req.Quantity,
		Price:         req.Price,
	})

	writeJSON(w, http.StatusCreated, map[string]string{"newOrderId": o.ID.Hex()})
}

func (h *OrdersHandler) removeOrder(w http.ResponseWriter, r *http.Request) {
	var req removeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.OrderID == "" || req.CartID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx := r.Context()
	if err := h.Ledger.Remove(ctx, req.OrderID, req.CartID); err != nil {
		h.Log.Error("remove order", "order_id", req.OrderID, "cart_id", req.CartID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to remove order"})
		return
	}

	cacheDel(ctx, h.Redis, fmt.Sprintf(redisx.KeyCart, req.CartID))
	h.publish(h.Removed, orders.EventOrderRemoved, req.CartID, orders.OrderRemovedPayload{
		OrderID: req.OrderID,
		CartID:  req.CartID,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) updateOrderQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	o, err := h.Ledger.UpdateQuantity(r.Context(), req.OrderID, req.Quantity)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		h.Log.Error("update order quantity", "order_id", req.OrderID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	h.publish(h.Qty, orders.EventQuantityUpdated, o.CartID, orders.QuantityUpdatedPayload{
		OrderID:  req.OrderID,
		Quantity: req.Quantity,
	})

	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Ledger.List(r.Context())
	if err != nil {
		h.Log.Error("list orders", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if out == nil {
		out = []orders.FoodListingOrder{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) publish(p *kafkax.Producer, eventType, cartID string, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		CorrelationID: cartID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(cartID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
