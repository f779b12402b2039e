package accounts

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("user not found")

type Repo struct{ DB *mongo.Database }

func (r *Repo) coll() *mongo.Collection { return r.DB.Collection("users") }

func (r *Repo) List(ctx context.Context) ([]User, error) {
	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Insert(ctx context.Context, u User) error {
	_, err := r.coll().InsertOne(ctx, u)
	return err
}

// PushCartID appends cartID onto the user's cart list atomically.
func (r *Repo) PushCartID(ctx context.Context, userID, cartID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.M{"$push": bson.M{"cartIds": cartID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetCartIDs overwrites the user's cart list.
func (r *Repo) SetCartIDs(ctx context.Context, userID string, cartIDs []string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.M{"$set": bson.M{"cartIds": cartIDs}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
