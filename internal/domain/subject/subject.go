package subject

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrNotFound = errors.New("subject not found")

const DefaultIcon = "📚"

type Subject struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Code        string        `bson:"code" json:"code"`
	Description *string       `bson:"description,omitempty" json:"description"`
	Icon        string        `bson:"icon,omitempty" json:"icon"`
}
