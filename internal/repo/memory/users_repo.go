package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/domain/user"
)

// UsersRepo mirrors the mongo store's uniqueness guarantees in memory so
// handler and race tests can run without a database.
type UsersRepo struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
	byName  map[string]string // username -> email
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byEmail: make(map[string]user.User),
		byName:  make(map[string]string),
	}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return user.User{}, user.ErrEmailOrUsernameTaken
	}

	if _, ok := r.byName[u.Username]; ok {
		return user.User{}, user.ErrEmailOrUsernameTaken
	}

	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}

	r.byEmail[u.Email] = u
	r.byName[u.Username] = u.Email

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

// Delete removes a user; tests use it to simulate an account deleted after
// a token was issued.
func (r *UsersRepo) Delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]

	if !ok {
		return
	}

	delete(r.byEmail, email)
	delete(r.byName, u.Username)
}
