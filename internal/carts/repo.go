package carts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrCartNotFound = errors.New("cart not found")

type Repo struct{ DB *mongo.Database }

func (r *Repo) coll() *mongo.Collection { return r.DB.Collection("carts") }

// Create persists a new empty cart owned by userID.
func (r *Repo) Create(ctx context.Context, userID string) (Cart, error) {
	now := time.Now().UTC()
	c := Cart{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		OrderIDs:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll().InsertOne(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context) ([]Cart, error) {
	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []Cart
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Cart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCartNotFound
	}
	var c Cart
	err = r.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AppendOrderID pushes orderID onto the cart's order list atomically,
// avoiding lost updates under concurrent writers.
func (r *Repo) AppendOrderID(ctx context.Context, cartID, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return ErrCartNotFound
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.M{
		"$push": bson.M{"orderIds": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

// RemoveOrderID pulls orderID from the cart's order list. Removing an
// absent id, or pulling from an absent cart, is not an error.
func (r *Repo) RemoveOrderID(ctx context.Context, cartID, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return nil
	}
	_, err = r.coll().UpdateByID(ctx, oid, bson.M{
		"$pull": bson.M{"orderIds": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

// SetOrderIDs overwrites the cart's order list. Used by the repair
// pass, not by the request path.
func (r *Repo) SetOrderIDs(ctx context.Context, cartID string, orderIDs []string) error {
	oid, err := primitive.ObjectIDFromHex(cartID)
	if err != nil {
		return ErrCartNotFound
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"orderIds": orderIDs, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
