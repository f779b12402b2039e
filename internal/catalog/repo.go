package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrListingNotFound = errors.New("food listing not found")

type Repo struct{ DB *mongo.Database }

func (r *Repo) listings() *mongo.Collection    { return r.DB.Collection("foodListings") }
func (r *Repo) restaurants() *mongo.Collection { return r.DB.Collection("restaurants") }

func (r *Repo) ListListings(ctx context.Context) ([]FoodListing, error) {
	cur, err := r.listings().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []FoodListing
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	cur, err := r.restaurants().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []Restaurant
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetListing(ctx context.Context, id string) (*FoodListing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrListingNotFound
	}
	var fl FoodListing
	err = r.listings().FindOne(ctx, bson.M{"_id": oid}).Decode(&fl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fl, nil
}

// ReplaceSavedEntries rewrites the whole embedded entries array in a
// single document update.
func (r *Repo) ReplaceSavedEntries(ctx context.Context, id string, entries []SavedEntry) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrListingNotFound
	}
	res, err := r.listings().UpdateByID(ctx, oid, bson.M{"$set": bson.M{"isSavedEntries": entries}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrListingNotFound
	}
	return nil
}
