package orders

import (
	"context"

	"github.com/arhamf/food-delivery-api/internal/carts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStore is the slice of the order store the ledger needs.
type OrderStore interface {
	Insert(ctx context.Context, o FoodListingOrder) error
	Delete(ctx context.Context, id string) error
	UpdateQuantity(ctx context.Context, id string, quantity int) (*FoodListingOrder, error)
	List(ctx context.Context) ([]FoodListingOrder, error)
}

// CartList is the slice of the cart store the ledger needs.
type CartList interface {
	GetByID(ctx context.Context, id string) (*carts.Cart, error)
	AppendOrderID(ctx context.Context, cartID, orderID string) error
	RemoveOrderID(ctx context.Context, cartID, orderID string) error
}

// Ledger creates, updates and deletes order records and reflects
// their ids into the owning cart's order list. Order and cart live in
// separate documents with no transaction spanning both, so each
// operation sequences its two writes to keep the reachable failure
// window at "stale id in cart", which the repair pass can heal.
type Ledger struct {
	Orders OrderStore
	Carts  CartList
}

// Add creates an order attached to cartID and appends its id to the
// cart's order list. The cart is checked first so a missing cart
// fails with ErrCartNotFound before any order document exists.
func (l *Ledger) Add(ctx context.Context, cartID, foodListingID string, quantity int, price float64) (FoodListingOrder, error) {
	if _, err := l.Carts.GetByID(ctx, cartID); err != nil {
		return FoodListingOrder{}, err
	}

	o := FoodListingOrder{
		ID:            primitive.NewObjectID(),
		FoodListingID: foodListingID,
		Quantity:      quantity,
		Price:         price,
		CartID:        cartID,
	}
	if err := l.Orders.Insert(ctx, o); err != nil {
		return FoodListingOrder{}, err
	}
	if err := l.Carts.AppendOrderID(ctx, cartID, o.ID.Hex()); err != nil {
		return FoodListingOrder{}, err
	}
	return o, nil
}

// Remove deletes the order first and pulls its id from the cart
// second. A crash in between leaves a stale id in the cart rather
// than an order no cart references; the former is discoverable and
// repairable, the latter is not reachable via the cart at all.
// Removing an id the cart no longer lists is a no-op.
func (l *Ledger) Remove(ctx context.Context, orderID, cartID string) error {
	if err := l.Orders.Delete(ctx, orderID); err != nil {
		return err
	}
	return l.Carts.RemoveOrderID(ctx, cartID, orderID)
}

func (l *Ledger) UpdateQuantity(ctx context.Context, orderID string, quantity int) (*FoodListingOrder, error) {
	return l.Orders.UpdateQuantity(ctx, orderID, quantity)
}

func (l *Ledger) List(ctx context.Context) ([]FoodListingOrder, error) {
	return l.Orders.List(ctx)
}
