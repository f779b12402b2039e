package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arhamf/food-delivery-api/internal/accounts"
	"github.com/arhamf/food-delivery-api/internal/carts"
	"github.com/arhamf/food-delivery-api/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// cartReader is the read surface of the cart store.
type cartReader interface {
	List(ctx context.Context) ([]carts.Cart, error)
	GetByID(ctx context.Context, id string) (*carts.Cart, error)
}

type CartsHandler struct {
	Manager *carts.Manager
	Reader  cartReader
	Redis   *redis.Client
	Log     *slog.Logger
}

type createCartReq struct {
	UserID string `json:"userId"`
}

func (h *CartsHandler) Register(r *chi.Mux) {
	r.Get("/get-carts", h.getCarts)
	r.Get("/get-cart-by-id/{id}", h.getCartByID)
	r.Post("/create-cart", h.createCart)
}

func (h *CartsHandler) getCarts(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reader.List(r.Context())
	if err != nil {
		h.Log.Error("list carts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if out == nil {
		out = []carts.Cart{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CartsHandler) getCartByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	key := fmt.Sprintf(redisx.KeyCart, id)
	if s, ok := cacheGet(ctx, h.Redis, key); ok {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	c, err := h.Reader.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, carts.ErrCartNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
			return
		}
		h.Log.Error("get cart", "cart_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	b, _ := json.Marshal(c)
	cacheSet(ctx, h.Redis, key, b, redisx.TTLCartCache)
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}

func (h *CartsHandler) createCart(w http.ResponseWriter, r *http.Request) {
	var req createCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	c, err := h.Manager.Create(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		h.Log.Error("create cart", "user_id", req.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
