package orders

import "go.mongodb.org/mongo-driver/bson/primitive"

// FoodListingOrder is one line item: a listing, a quantity and the
// price at order time, attached to exactly one cart.
type FoodListingOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodListingID string             `bson:"foodListingId" json:"foodListingId"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	CartID        string             `bson:"cartId" json:"cartId"`
}
