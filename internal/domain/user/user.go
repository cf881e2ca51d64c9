package user

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrNotFound = errors.New("user not found")

// returned when the unique index on email or username rejects an insert
var ErrEmailOrUsernameTaken = errors.New("email or username already registered")

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"hashed_password" json:"-"` // never expose hash in JSON
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
}

// Public is the response projection of a user. The hash cannot leak through
// it because the type simply has no field for it.
type Public struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() Public {
	return Public{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
