package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mjayaraman27/eduhub/internal/domain/material"
	"github.com/mjayaraman27/eduhub/internal/observability"
)

type MaterialsRepo struct {
	coll *mongo.Collection
	prom *observability.Prom
}

func NewMaterialsRepo(db *mongo.Database, prom *observability.Prom) *MaterialsRepo {
	return &MaterialsRepo{
		coll: db.Collection("materials"),
		prom: prom,
	}
}

func (r *MaterialsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *MaterialsRepo) Create(ctx context.Context, req material.CreateMaterialRequest, uploadedBy string) (material.Material, error) {
	m := material.NewFromCreateRequest(req, uploadedBy)

	var res *mongo.InsertOneResult

	err := r.observe("materials.create", func() error {
		var e error
		res, e = r.coll.InsertOne(ctx, m)
		return e
	})

	if err != nil {
		return material.Material{}, err
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		m.ID = id
	}

	return m, nil
}

// ListBySubject returns the materials filed under a subject, oldest first.
// An unknown subject id simply yields an empty list.
func (r *MaterialsRepo) ListBySubject(ctx context.Context, subjectID string) ([]material.Material, error) {
	out := make([]material.Material, 0)

	err := r.observe("materials.list_by_subject", func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: 1}}).
			SetLimit(listCap)

		cur, e := r.coll.Find(ctx, bson.D{{Key: "subject_id", Value: subjectID}}, opts)

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
