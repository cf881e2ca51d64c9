package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mjayaraman27/eduhub/internal/domain/user"
	"github.com/mjayaraman27/eduhub/internal/observability"
)

type UsersRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewUsersRepo(db *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		coll: db.Collection("users"),
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create inserts a new user. The duplicate pre-check catches the common case
// early; two concurrent signups with the same email or username are still
// resolved by the unique indexes, so exactly one insert wins.
func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	var exists bool

	err := r.observe("users.create.duplicate_check", func() error {
		filter := bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "email", Value: u.Email}},
			bson.D{{Key: "username", Value: u.Username}},
		}}}

		e := r.coll.FindOne(ctx, filter).Err()

		if e == nil {
			exists = true
			return nil
		}

		if errors.Is(e, mongo.ErrNoDocuments) {
			return nil
		}

		return e
	})

	if err != nil {
		return user.User{}, err
	}

	if exists {
		return user.User{}, user.ErrEmailOrUsernameTaken
	}

	var res *mongo.InsertOneResult

	err = r.observe("users.create.insert", func() error {
		var e error
		res, e = r.coll.InsertOne(ctx, u)
		return e
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailOrUsernameTaken
		}

		return user.User{}, err
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}
