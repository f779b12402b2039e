package carts

import "context"

// CartStore creates cart documents.
type CartStore interface {
	Create(ctx context.Context, userID string) (Cart, error)
}

// UserAttacher appends a cart id onto a user's cart list.
type UserAttacher interface {
	PushCartID(ctx context.Context, userID, cartID string) error
}

// Manager owns cart creation: a cart is persisted first, then its id
// is attached to the owning user with an atomic list append.
type Manager struct {
	Carts CartStore
	Users UserAttacher
}

func (m *Manager) Create(ctx context.Context, userID string) (Cart, error) {
	c, err := m.Carts.Create(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	if err := m.Users.PushCartID(ctx, userID, c.ID.Hex()); err != nil {
		return Cart{}, err
	}
	return c, nil
}
