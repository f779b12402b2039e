package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

// SavedEntry is a per-user bookmark flag embedded in a listing.
// At most one entry exists per user id.
type SavedEntry struct {
	UserID        string `bson:"userId" json:"userId"`
	IsSaved       bool   `bson:"isSaved" json:"isSaved"`
	FoodListingID string `bson:"foodListingId" json:"foodListingId"`
}

type FoodListing struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Type            string             `bson:"type" json:"type"`
	Cuisine         string             `bson:"cuisine" json:"cuisine"`
	Price           float64            `bson:"price" json:"price"`
	MealSuitability string             `bson:"mealSuitability" json:"mealSuitability"`
	RestaurantID    string             `bson:"restaurantId" json:"restaurantId"`
	ImageSource     string             `bson:"imageSource" json:"imageSource"`
	IsSavedEntries  []SavedEntry       `bson:"isSavedEntries" json:"isSavedEntries"`
}

type Restaurant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Cuisines    string             `bson:"cuisines" json:"cuisines"`
	Description string             `bson:"description" json:"description"`
	Address     string             `bson:"address" json:"address"`
}
