package orders

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrOrderNotFound = errors.New("order not found")

type Repo struct{ DB *mongo.Database }

func (r *Repo) coll() *mongo.Collection { return r.DB.Collection("orders") }

func (r *Repo) Insert(ctx context.Context, o FoodListingOrder) error {
	_, err := r.coll().InsertOne(ctx, o)
	return err
}

// Delete removes the order by id. Deleting an absent order is not an
// error; the remove path must stay idempotent.
func (r *Repo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.coll().DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// UpdateQuantity sets the order's quantity in place and returns the
// updated document.
func (r *Repo) UpdateQuantity(ctx context.Context, id string, quantity int) (*FoodListingOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o FoodListingOrder
	err = r.coll().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"quantity": quantity}},
		opts,
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) List(ctx context.Context) ([]FoodListingOrder, error) {
	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []FoodListingOrder
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListIDsByCart returns the ids of live orders whose cartId equals
// cartID. The repair pass filters cart lists against this set.
func (r *Repo) ListIDsByCart(ctx context.Context, cartID string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.coll().Find(ctx, bson.M{"cartId": cartID}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}
	return ids, nil
}
