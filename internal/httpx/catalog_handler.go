package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/arhamf/food-delivery-api/internal/catalog"
	"github.com/arhamf/food-delivery-api/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type CatalogHandler struct {
	Service *catalog.Service
	Redis   *redis.Client
	Log     *slog.Logger
}

type updateSavedStatusReq struct {
	FoodListingID string `json:"foodListingId"`
	IsSaved       bool   `json:"isSaved"`
	UserID        string `json:"userId"`
}

func (h *CatalogHandler) Register(r *chi.Mux) {
	r.Get("/get-food-listings", h.getFoodListings)
	r.Get("/get-restaurants", h.getRestaurants)
	r.Put("/update-is-saved-status", h.updateIsSavedStatus)
}

func (h *CatalogHandler) getFoodListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s, ok := cacheGet(ctx, h.Redis, redisx.KeyListings); ok {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	listings, err := h.Service.Listings(ctx)
	if err != nil {
		h.Log.Error("list food listings", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if listings == nil {
		listings = []catalog.FoodListing{}
	}

	b, _ := json.Marshal(listings)
	cacheSet(ctx, h.Redis, redisx.KeyListings, b, redisx.TTLCatalogCache)
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}

func (h *CatalogHandler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s, ok := cacheGet(ctx, h.Redis, redisx.KeyRestaurants); ok {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	restaurants, err := h.Service.Restaurants(ctx)
	if err != nil {
		h.Log.Error("list restaurants", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if restaurants == nil {
		restaurants = []catalog.Restaurant{}
	}

	b, _ := json.Marshal(restaurants)
	cacheSet(ctx, h.Redis, redisx.KeyRestaurants, b, redisx.TTLCatalogCache)
	writeJSON(w, http.StatusOK, json.RawMessage(b))
}

func (h *CatalogHandler) updateIsSavedStatus(w http.ResponseWriter, r *http.Request) {
	var req updateSavedStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.FoodListingID == "" || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx := r.Context()
	if err := h.Service.SetSavedStatus(ctx, req.FoodListingID, req.UserID, req.IsSaved); err != nil {
		if errors.Is(err, catalog.ErrListingNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "food listing not found"})
			return
		}
		h.Log.Error("update saved status", "food_listing_id", req.FoodListingID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	cacheDel(ctx, h.Redis, redisx.KeyListings)
	w.WriteHeader(http.StatusNoContent)
}
