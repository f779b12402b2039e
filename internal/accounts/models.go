package accounts

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Username       string             `bson:"username" json:"username"`
	HashedPasscode string             `bson:"hashedPasscode" json:"hashedPasscode"`
	CartIDs        []string           `bson:"cartIds" json:"cartIds"`
}
