package material

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Material struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID  string        `bson:"subject_id" json:"subject_id"`
	Title      string        `bson:"title" json:"title"`
	Content    *string       `bson:"content,omitempty" json:"content"`
	FileURL    *string       `bson:"file_url,omitempty" json:"file_url"`
	UploadedBy string        `bson:"uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time     `bson:"created_at" json:"created_at"`
}

type CreateMaterialRequest struct {
	SubjectID string  `json:"subject_id" binding:"required"`
	Title     string  `json:"title" binding:"required,min=1"`
	Content   *string `json:"content"`
	FileURL   *string `json:"file_url"`
}
