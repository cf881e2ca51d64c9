package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mjayaraman27/eduhub/internal/domain/user"
	"github.com/mjayaraman27/eduhub/internal/repo/memory"
)

func TestUsersRepo_CreateAndGetByEmail(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, user.User{
		Email:        "sam@example.com",
		Username:     "sam",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ID.IsZero() {
		t.Fatal("expected an assigned id")
	}

	got, err := repo.GetByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}

	if got.ID != created.ID || got.Username != "sam" {
		t.Fatalf("got %+v, want %+v", got, created)
	}
}

func TestUsersRepo_GetByEmail_NotFound(t *testing.T) {
	repo := memory.NewUsersRepo()

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want %v", err, user.ErrNotFound)
	}
}

func TestUsersRepo_DuplicateEmailOrUsername(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, user.User{Email: "sam@example.com", Username: "sam"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	tests := []struct {
		name string
		u    user.User
	}{
		{name: "same_email", u: user.User{Email: "sam@example.com", Username: "other"}},
		{name: "same_username", u: user.User{Email: "other@example.com", Username: "sam"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.u)

			if !errors.Is(err, user.ErrEmailOrUsernameTaken) {
				t.Fatalf("got %v, want %v", err, user.ErrEmailOrUsernameTaken)
			}
		})
	}
}

func TestUsersRepo_Delete(t *testing.T) {
	repo := memory.NewUsersRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, user.User{Email: "sam@example.com", Username: "sam"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.Delete("sam@example.com")

	if _, err := repo.GetByEmail(ctx, "sam@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want %v", err, user.ErrNotFound)
	}

	// both unique keys must be released
	if _, err := repo.Create(ctx, user.User{Email: "sam@example.com", Username: "sam"}); err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}
}

// Concurrent signups for the same email must yield exactly one account.
func TestUsersRepo_ConcurrentCreateSameEmail(t *testing.T) {
	repo := memory.NewUsersRepo()

	const attempts = 50

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, errs[i] = repo.Create(context.Background(), user.User{
				Email:    "sam@example.com",
				Username: "sam",
			})
		}(i)
	}

	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, user.ErrEmailOrUsernameTaken):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if created != 1 {
		t.Fatalf("got %d successful creates, want exactly 1", created)
	}
}
