package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mjayaraman27/eduhub/internal/domain/subject"
	"github.com/mjayaraman27/eduhub/internal/observability"
)

// listCap bounds catalog and material listings.
const listCap = 100

type SubjectsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewSubjectsRepo(db *mongo.Database, prom *observability.Prom) *SubjectsRepo {
	return &SubjectsRepo{
		coll: db.Collection("subjects"),
		prom: prom,
	}
}

func (r *SubjectsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *SubjectsRepo) List(ctx context.Context) ([]subject.Subject, error) {
	out := make([]subject.Subject, 0)

	err := r.observe("subjects.list", func() error {
		cur, e := r.coll.Find(ctx, bson.D{}, options.Find().SetLimit(listCap))

		if e != nil {
			return e
		}

		return cur.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *SubjectsRepo) GetByID(ctx context.Context, id bson.ObjectID) (subject.Subject, error) {
	var s subject.Subject

	err := r.observe("subjects.get_by_id", func() error {
		return r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&s)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return subject.Subject{}, subject.ErrNotFound
		}

		return subject.Subject{}, err
	}

	return s, nil
}
