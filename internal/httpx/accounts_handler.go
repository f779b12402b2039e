package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/arhamf/food-delivery-api/internal/accounts"
	"github.com/go-chi/chi/v5"
)

type AccountsHandler struct {
	Service *accounts.Service
	Log     *slog.Logger
}

type createAccountReq struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	HashedPasscode string `json:"hashedPasscode"`
}

type loginReq struct {
	Username       string `json:"username"`
	HashedPasscode string `json:"hashedPasscode"`
}

func (h *AccountsHandler) Register(r *chi.Mux) {
	r.Post("/create-account", h.createAccount)
	r.Post("/login", h.login)
}

func (h *AccountsHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Username == "" || req.HashedPasscode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	userID, err := h.Service.CreateAccount(r.Context(), req.Name, req.Username, req.HashedPasscode)
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Username already exists"})
			return
		}
		h.Log.Error("create account", "username", req.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, userID)
}

// login reports its failure modes inside a 200 body rather than via
// status codes; clients inspect the error field.
func (h *AccountsHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	user, err := h.Service.Login(r.Context(), req.Username, req.HashedPasscode)
	switch {
	case errors.Is(err, accounts.ErrUserNotFound):
		writeJSON(w, http.StatusOK, map[string]string{"error": "Username not found"})
		return
	case errors.Is(err, accounts.ErrBadPasscode):
		writeJSON(w, http.StatusOK, map[string]string{"error": "Passcode incorrect"})
		return
	case err != nil:
		h.Log.Error("login", "username", req.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}
