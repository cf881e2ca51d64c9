package material

import "time"

// NewFromCreateRequest builds a Material ready for insertion; the store
// assigns the ID.
func NewFromCreateRequest(req CreateMaterialRequest, uploadedBy string) Material {
	return Material{
		SubjectID:  req.SubjectID,
		Title:      req.Title,
		Content:    req.Content,
		FileURL:    req.FileURL,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now().UTC(),
	}
}
