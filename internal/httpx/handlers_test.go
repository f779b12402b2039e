package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arhamf/food-delivery-api/internal/accounts"
	"github.com/arhamf/food-delivery-api/internal/carts"
	"github.com/arhamf/food-delivery-api/internal/catalog"
	"github.com/arhamf/food-delivery-api/internal/orders"
	"github.com/arhamf/food-delivery-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores standing in for the mongo repos. They implement
// the same store interfaces the services consume.

type memListings struct {
	listings map[string]*catalog.FoodListing
}

func (m *memListings) ListListings(ctx context.Context) ([]catalog.FoodListing, error) {
	out := make([]catalog.FoodListing, 0, len(m.listings))
	for _, fl := range m.listings {
		out = append(out, *fl)
	}
	return out, nil
}

func (m *memListings) ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error) {
	return []catalog.Restaurant{}, nil
}

func (m *memListings) GetListing(ctx context.Context, id string) (*catalog.FoodListing, error) {
	fl, ok := m.listings[id]
	if !ok {
		return nil, catalog.ErrListingNotFound
	}
	cp := *fl
	return &cp, nil
}

func (m *memListings) ReplaceSavedEntries(ctx context.Context, id string, entries []catalog.SavedEntry) error {
	fl, ok := m.listings[id]
	if !ok {
		return catalog.ErrListingNotFound
	}
	fl.IsSavedEntries = entries
	return nil
}

type memCarts struct {
	carts map[string]*carts.Cart
}

func (m *memCarts) Create(ctx context.Context, userID string) (carts.Cart, error) {
	now := time.Now().UTC()
	c := carts.Cart{ID: primitive.NewObjectID(), UserID: userID, OrderIDs: []string{}, CreatedAt: now, UpdatedAt: now}
	m.carts[c.ID.Hex()] = &c
	return c, nil
}

func (m *memCarts) List(ctx context.Context) ([]carts.Cart, error) {
	out := make([]carts.Cart, 0, len(m.carts))
	for _, c := range m.carts {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCarts) GetByID(ctx context.Context, id string) (*carts.Cart, error) {
	c, ok := m.carts[id]
	if !ok {
		return nil, carts.ErrCartNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCarts) AppendOrderID(ctx context.Context, cartID, orderID string) error {
	c, ok := m.carts[cartID]
	if !ok {
		return carts.ErrCartNotFound
	}
	c.OrderIDs = append(c.OrderIDs, orderID)
	return nil
}

func (m *memCarts) RemoveOrderID(ctx context.Context, cartID, orderID string) error {
	c, ok := m.carts[cartID]
	if !ok {
		return nil
	}
	kept := c.OrderIDs[:0]
	for _, id := range c.OrderIDs {
		if id != orderID {
			kept = append(kept, id)
		}
	}
	c.OrderIDs = kept
	return nil
}

type memOrders struct {
	orders map[string]orders.FoodListingOrder
}

func (m *memOrders) Insert(ctx context.Context, o orders.FoodListingOrder) error {
	m.orders[o.ID.Hex()] = o
	return nil
}

func (m *memOrders) Delete(ctx context.Context, id string) error {
	delete(m.orders, id)
	return nil
}

func (m *memOrders) UpdateQuantity(ctx context.Context, id string, quantity int) (*orders.FoodListingOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	o.Quantity = quantity
	m.orders[id] = o
	return &o, nil
}

func (m *memOrders) List(ctx context.Context) ([]orders.FoodListingOrder, error) {
	out := make([]orders.FoodListingOrder, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

type memUsers struct {
	users []accounts.User
}

func (m *memUsers) List(ctx context.Context) ([]accounts.User, error) {
	out := make([]accounts.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *memUsers) Insert(ctx context.Context, u accounts.User) error {
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) find(userID string) *accounts.User {
	for i := range m.users {
		if m.users[i].ID.Hex() == userID {
			return &m.users[i]
		}
	}
	return nil
}

func (m *memUsers) PushCartID(ctx context.Context, userID, cartID string) error {
	u := m.find(userID)
	if u == nil {
		return accounts.ErrUserNotFound
	}
	u.CartIDs = append(u.CartIDs, cartID)
	return nil
}

func (m *memUsers) SetCartIDs(ctx context.Context, userID string, cartIDs []string) error {
	u := m.find(userID)
	if u == nil {
		return accounts.ErrUserNotFound
	}
	u.CartIDs = cartIDs
	return nil
}

type env struct {
	router   *chi.Mux
	listings *memListings
	carts    *memCarts
	orders   *memOrders
	users    *memUsers
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := logger.New("error")

	e := &env{
		listings: &memListings{listings: map[string]*catalog.FoodListing{}},
		carts:    &memCarts{carts: map[string]*carts.Cart{}},
		orders:   &memOrders{orders: map[string]orders.FoodListingOrder{}},
		users:    &memUsers{},
	}

	catalogSvc := &catalog.Service{Store: e.listings}
	manager := &carts.Manager{Carts: e.carts, Users: e.users}
	ledger := &orders.Ledger{Orders: e.orders, Carts: e.carts}
	accountsSvc := &accounts.Service{Users: e.users, Carts: e.carts}

	r := chi.NewRouter()
	(&CatalogHandler{Service: catalogSvc, Log: log}).Register(r)
	(&OrdersHandler{Ledger: ledger, Service: "test", Log: log}).Register(r)
	(&CartsHandler{Manager: manager, Reader: e.carts, Log: log}).Register(r)
	(&AccountsHandler{Service: accountsSvc, Log: log}).Register(r)
	e.router = r
	return e
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestEndToEndScenario(t *testing.T) {
	e := newEnv(t)

	listing := &catalog.FoodListing{ID: primitive.NewObjectID(), Name: "Biryani", Price: 9.0}
	e.listings.listings[listing.ID.Hex()] = listing

	// create account
	w := e.do(t, http.MethodPost, "/create-account",
		map[string]string{"name": "A", "username": "alice", "hashedPasscode": "h1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create-account status = %d, want 201", w.Code)
	}
	userID := decode[string](t, w)
	if userID == "" {
		t.Fatal("expected user id")
	}

	// login: provisions the first cart
	w = e.do(t, http.MethodPost, "/login",
		map[string]string{"username": "alice", "hashedPasscode": "h1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", w.Code)
	}
	user := decode[accounts.User](t, w)
	if len(user.CartIDs) != 1 {
		t.Fatalf("cartIds length = %d, want 1", len(user.CartIDs))
	}
	cart1 := user.CartIDs[0]

	// create a second cart explicitly
	w = e.do(t, http.MethodPost, "/create-cart", map[string]string{"userId": userID})
	if w.Code != http.StatusCreated {
		t.Fatalf("create-cart status = %d, want 201", w.Code)
	}
	if got := e.users.find(userID).CartIDs; len(got) != 2 {
		t.Fatalf("cartIds length = %d, want 2", len(got))
	}

	// add an order to cart 1
	w = e.do(t, http.MethodPost, "/add-order", map[string]any{
		"cartId":        cart1,
		"foodListingId": listing.ID.Hex(),
		"quantity":      1,
		"price":         9.0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add-order status = %d, want 201", w.Code)
	}
	orderID := decode[map[string]string](t, w)["newOrderId"]
	if orderID == "" {
		t.Fatal("expected newOrderId")
	}

	w = e.do(t, http.MethodGet, "/get-cart-by-id/"+cart1, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get-cart-by-id status = %d, want 200", w.Code)
	}
	cart := decode[carts.Cart](t, w)
	if len(cart.OrderIDs) != 1 || cart.OrderIDs[0] != orderID {
		t.Fatalf("cart orderIds = %v, want [%s]", cart.OrderIDs, orderID)
	}

	// remove the order again
	w = e.do(t, http.MethodDelete, "/remove-order",
		map[string]string{"orderId": orderID, "cartId": cart1})
	if w.Code != http.StatusNoContent {
		t.Fatalf("remove-order status = %d, want 204", w.Code)
	}

	w = e.do(t, http.MethodGet, "/get-cart-by-id/"+cart1, nil)
	cart = decode[carts.Cart](t, w)
	if len(cart.OrderIDs) != 0 {
		t.Fatalf("cart orderIds = %v, want empty", cart.OrderIDs)
	}

	w = e.do(t, http.MethodGet, "/get-food-listing-orders", nil)
	if got := decode[[]orders.FoodListingOrder](t, w); len(got) != 0 {
		t.Fatalf("order records = %d, want 0", len(got))
	}
}

func TestCreateAccount_DuplicateUsername(t *testing.T) {
	e := newEnv(t)

	body := map[string]string{"name": "A", "username": "alice", "hashedPasscode": "h1"}
	if w := e.do(t, http.MethodPost, "/create-account", body); w.Code != http.StatusCreated {
		t.Fatalf("first create-account status = %d, want 201", w.Code)
	}

	w := e.do(t, http.MethodPost, "/create-account", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("duplicate create-account status = %d, want 401", w.Code)
	}
	resp := decode[map[string]string](t, w)
	if resp["message"] != "Username already exists" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestLogin_FailuresAreOKWithErrorField(t *testing.T) {
	e := newEnv(t)
	if w := e.do(t, http.MethodPost, "/create-account",
		map[string]string{"name": "A", "username": "alice", "hashedPasscode": "h1"}); w.Code != http.StatusCreated {
		t.Fatalf("create-account status = %d", w.Code)
	}

	tests := []struct {
		name      string
		body      map[string]string
		wantError string
	}{
		{
			name:      "unknown username",
			body:      map[string]string{"username": "bob", "hashedPasscode": "h1"},
			wantError: "Username not found",
		},
		{
			name:      "wrong passcode",
			body:      map[string]string{"username": "alice", "hashedPasscode": "nope"},
			wantError: "Passcode incorrect",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/login", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			resp := decode[map[string]string](t, w)
			if resp["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", resp["error"], tt.wantError)
			}
		})
	}
}

func TestAddOrder_CartNotFound(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/add-order", map[string]any{
		"cartId":        primitive.NewObjectID().Hex(),
		"foodListingId": "l1",
		"quantity":      1,
		"price":         5.0,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAddOrder_MissingFields(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/add-order", map[string]any{"quantity": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateOrderQuantity(t *testing.T) {
	e := newEnv(t)

	c, _ := e.carts.Create(context.Background(), "u1")
	ledgerOrder := orders.FoodListingOrder{
		ID: primitive.NewObjectID(), FoodListingID: "l1", Quantity: 2, Price: 5.0, CartID: c.ID.Hex(),
	}
	_ = e.orders.Insert(context.Background(), ledgerOrder)

	w := e.do(t, http.MethodPut, "/update-order-quantity",
		map[string]any{"orderId": ledgerOrder.ID.Hex(), "quantity": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	got := decode[orders.FoodListingOrder](t, w)
	if got.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", got.Quantity)
	}

	w = e.do(t, http.MethodPut, "/update-order-quantity",
		map[string]any{"orderId": primitive.NewObjectID().Hex(), "quantity": 5})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateIsSavedStatus(t *testing.T) {
	e := newEnv(t)

	listing := &catalog.FoodListing{ID: primitive.NewObjectID(), Name: "Biryani"}
	e.listings.listings[listing.ID.Hex()] = listing

	w := e.do(t, http.MethodPut, "/update-is-saved-status", map[string]any{
		"foodListingId": listing.ID.Hex(), "isSaved": true, "userId": "u1",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(listing.IsSavedEntries) != 1 || !listing.IsSavedEntries[0].IsSaved {
		t.Errorf("entries = %+v", listing.IsSavedEntries)
	}

	w = e.do(t, http.MethodPut, "/update-is-saved-status", map[string]any{
		"foodListingId": primitive.NewObjectID().Hex(), "isSaved": true, "userId": "u1",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetCartByID_NotFound(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/get-cart-by-id/"+primitive.NewObjectID().Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCreateCart_UserNotFound(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/create-cart",
		map[string]string{"userId": primitive.NewObjectID().Hex()})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
