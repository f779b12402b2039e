package carts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is a user's in-progress collection of orders. OrderIDs holds
// the ids of the live orders whose cartId points back at this cart.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	OrderIDs  []string           `bson:"orderIds" json:"orderIds"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
