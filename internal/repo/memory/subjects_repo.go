package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/domain/subject"
)

type SubjectsRepo struct {
	mu    sync.RWMutex
	items map[bson.ObjectID]subject.Subject
	order []bson.ObjectID
}

func NewSubjectsRepo() *SubjectsRepo {
	return &SubjectsRepo{
		items: make(map[bson.ObjectID]subject.Subject),
	}
}

// Seed inserts subjects, assigning ids, and returns them as stored.
func (r *SubjectsRepo) Seed(subjects ...subject.Subject) []subject.Subject {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]subject.Subject, 0, len(subjects))

	for _, s := range subjects {
		if s.ID.IsZero() {
			s.ID = bson.NewObjectID()
		}

		if s.Icon == "" {
			s.Icon = subject.DefaultIcon
		}

		r.items[s.ID] = s
		r.order = append(r.order, s.ID)
		out = append(out, s)
	}

	return out
}

func (r *SubjectsRepo) List(ctx context.Context) ([]subject.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subject.Subject, 0, len(r.order))

	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *SubjectsRepo) GetByID(ctx context.Context, id bson.ObjectID) (subject.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]

	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}

	return s, nil
}
