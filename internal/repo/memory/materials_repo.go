package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/domain/material"
)

type MaterialsRepo struct {
	mu    sync.RWMutex
	items []material.Material
}

func NewMaterialsRepo() *MaterialsRepo {
	return &MaterialsRepo{}
}

func (r *MaterialsRepo) Create(ctx context.Context, req material.CreateMaterialRequest, uploadedBy string) (material.Material, error) {
	m := material.NewFromCreateRequest(req, uploadedBy)
	m.ID = bson.NewObjectID()

	r.mu.Lock()
	r.items = append(r.items, m)
	r.mu.Unlock()

	return m, nil
}

func (r *MaterialsRepo) ListBySubject(ctx context.Context, subjectID string) ([]material.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]material.Material, 0)

	for _, m := range r.items {
		if m.SubjectID == subjectID {
			out = append(out, m)
		}
	}

	return out, nil
}
