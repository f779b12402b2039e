package accounts

import (
	"context"
	"errors"

	"github.com/arhamf/food-delivery-api/internal/carts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrBadPasscode   = errors.New("passcode incorrect")
)

// UserStore is the slice of the user store the service needs.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	Insert(ctx context.Context, u User) error
	PushCartID(ctx context.Context, userID, cartID string) error
	SetCartIDs(ctx context.Context, userID string, cartIDs []string) error
}

// CartCreator persists new cart documents. Login provisions carts
// directly and manages the user's cart list itself, so it needs the
// bare store, not the cart manager.
type CartCreator interface {
	Create(ctx context.Context, userID string) (carts.Cart, error)
}

type Service struct {
	Users UserStore
	Carts CartCreator
}

// CreateAccount registers a new user with an empty cart list. The
// uniqueness check is load-all-then-scan against the users
// collection, not a store-level constraint, so two concurrent
// creations with the same username can both pass it.
func (s *Service) CreateAccount(ctx context.Context, name, username, hashedPasscode string) (string, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Username == username {
			return "", ErrUsernameTaken
		}
	}

	u := User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Username:       username,
		HashedPasscode: hashedPasscode,
		CartIDs:        []string{},
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return "", err
	}
	return u.ID.Hex(), nil
}

// Login authenticates by opaque passcode comparison and, on every
// success, provisions a fresh empty cart for the user. That side
// effect is deliberate: one cart per login event, never reused.
// Callers must not treat login as a pure read. The returned user
// reflects the updated cart list, persisted before returning.
func (s *Service) Login(ctx context.Context, username, hashedPasscode string) (*User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	var user *User
	for i := range users {
		if users[i].Username == username {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.HashedPasscode != hashedPasscode {
		return nil, ErrBadPasscode
	}

	cart, err := s.Carts.Create(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}
	cartID := cart.ID.Hex()

	if len(user.CartIDs) == 0 {
		ids := []string{cartID}
		if err := s.Users.SetCartIDs(ctx, user.ID.Hex(), ids); err != nil {
			return nil, err
		}
		user.CartIDs = ids
	} else {
		if err := s.Users.PushCartID(ctx, user.ID.Hex(), cartID); err != nil {
			return nil, err
		}
		user.CartIDs = append(user.CartIDs, cartID)
	}
	return user, nil
}
