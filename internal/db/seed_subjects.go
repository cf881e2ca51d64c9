package db

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mjayaraman27/eduhub/internal/domain/subject"
)

// EnsureDefaultSubjects seeds the subject catalog on first boot. An already
// populated collection is left untouched so operators can rename or remove
// subjects without the seed re-adding them.
func EnsureDefaultSubjects(ctx context.Context, database *mongo.Database) error {
	subjects := database.Collection("subjects")

	count, err := subjects.CountDocuments(ctx, bson.D{})
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	defaults := []any{
		subject.Subject{Name: "Internet of Things", Code: "IOT", Description: ptr("IOT"), Icon: "🌐"},
		subject.Subject{Name: "IOT Lab", Code: "IOT_LAB", Description: ptr("Practical Sessions"), Icon: "🔧"},
		subject.Subject{Name: "Pervasive Computing", Code: "PC", Description: ptr("PC"), Icon: "☁️"},
		subject.Subject{Name: "PC Lab", Code: "PC_LAB", Description: ptr("Hands-on Practice"), Icon: "⚙️"},
		subject.Subject{Name: "Big Data Analytics", Code: "BDA", Description: ptr("BDA"), Icon: "📊"},
		subject.Subject{Name: "Cryptography & Network Security", Code: "CNS", Description: ptr("CNS"), Icon: "🔐"},
		subject.Subject{Name: "Internet & Mobile Tech", Code: "INTM", Description: ptr("INTM"), Icon: "🧠"},
	}

	_, err = subjects.InsertMany(ctx, defaults)

	return err
}

func ptr(s string) *string {
	return &s
}
