package memory_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/domain/material"
	"github.com/mjayaraman27/eduhub/internal/repo/memory"
)

func TestMaterialsRepo_CreateAndListBySubject(t *testing.T) {
	repo := memory.NewMaterialsRepo()
	ctx := context.Background()

	subjectID := bson.NewObjectID().Hex()
	otherID := bson.NewObjectID().Hex()

	first, err := repo.Create(ctx, material.CreateMaterialRequest{
		SubjectID: subjectID,
		Title:     "Week 1 Notes",
	}, "uploader-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID.IsZero() {
		t.Fatal("expected an assigned id")
	}
	if first.UploadedBy != "uploader-1" {
		t.Fatalf("got uploaded_by %q, want %q", first.UploadedBy, "uploader-1")
	}

	if _, err := repo.Create(ctx, material.CreateMaterialRequest{
		SubjectID: otherID,
		Title:     "Unrelated Notes",
	}, "uploader-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.Create(ctx, material.CreateMaterialRequest{
		SubjectID: subjectID,
		Title:     "Week 2 Notes",
	}, "uploader-2"); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := repo.ListBySubject(ctx, subjectID)
	if err != nil {
		t.Fatalf("list by subject: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d materials, want 2", len(items))
	}

	// creation order is preserved and other subjects are filtered out
	if items[0].Title != "Week 1 Notes" || items[1].Title != "Week 2 Notes" {
		t.Fatalf("got order %q, %q", items[0].Title, items[1].Title)
	}
}

func TestMaterialsRepo_ListBySubject_Empty(t *testing.T) {
	repo := memory.NewMaterialsRepo()

	items, err := repo.ListBySubject(context.Background(), bson.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("list by subject: %v", err)
	}

	if items == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("got %d materials, want 0", len(items))
	}
}
