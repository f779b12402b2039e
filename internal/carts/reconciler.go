package carts

import "context"

// OrderIDLister reports the ids of live orders pointing at a cart.
type OrderIDLister interface {
	ListIDsByCart(ctx context.Context, cartID string) ([]string, error)
}

// CartRepairStore is the slice of the cart store the repair pass needs.
type CartRepairStore interface {
	GetByID(ctx context.Context, id string) (*Cart, error)
	SetOrderIDs(ctx context.Context, cartID string, orderIDs []string) error
}

// Reconciler rewrites a cart's order list to the subset whose orders
// still exist. Order deletion and the cart-list pull are separate
// store writes, so a crash between them leaves a stale id in the
// cart; this pass heals that. It is idempotent and safe to re-run.
type Reconciler struct {
	Carts  CartRepairStore
	Orders OrderIDLister
}

// Repair returns how many stale ids were dropped from the cart.
func (r *Reconciler) Repair(ctx context.Context, cartID string) (int, error) {
	c, err := r.Carts.GetByID(ctx, cartID)
	if err != nil {
		return 0, err
	}

	ids, err := r.Orders.ListIDsByCart(ctx, cartID)
	if err != nil {
		return 0, err
	}
	live := make(map[string]bool, len(ids))
	for _, id := range ids {
		live[id] = true
	}

	kept := make([]string, 0, len(c.OrderIDs))
	for _, id := range c.OrderIDs {
		if live[id] {
			kept = append(kept, id)
		}
	}

	removed := len(c.OrderIDs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := r.Carts.SetOrderIDs(ctx, cartID, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
