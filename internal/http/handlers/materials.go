package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/config"
	"github.com/mjayaraman27/eduhub/internal/domain/material"
	"github.com/mjayaraman27/eduhub/internal/domain/subject"
	"github.com/mjayaraman27/eduhub/internal/http/middlewares"
)

type MaterialsStore interface {
	Create(ctx context.Context, req material.CreateMaterialRequest, uploadedBy string) (material.Material, error)
	ListBySubject(ctx context.Context, subjectID string) ([]material.Material, error)
}

type MaterialsHandler struct {
	repo     MaterialsStore
	subjects SubjectsReader
}

func NewMaterialsHandler(repo MaterialsStore, subjects SubjectsReader) *MaterialsHandler {
	return &MaterialsHandler{
		repo:     repo,
		subjects: subjects,
	}
}

func (h *MaterialsHandler) CreateMaterial(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx)
		return
	}

	var req material.CreateMaterialRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// the subject must exist; a malformed id counts as missing
	subjectID, err := bson.ObjectIDFromHex(req.SubjectID)

	if err != nil {
		RespondNotFound(ctx, "Subject not found")
		return
	}

	if _, err := h.subjects.GetByID(cctx, subjectID); err != nil {
		if errors.Is(err, subject.ErrNotFound) {
			RespondNotFound(ctx, "Subject not found")
			return
		}

		RespondInternal(ctx, "Could not create material")
		return
	}

	m, err := h.repo.Create(cctx, req, u.ID.Hex())

	if err != nil {
		RespondInternal(ctx, "Could not create material")
		return
	}

	ctx.JSON(http.StatusOK, m)
}

// ListSubjectMaterials lists a subject's materials. An unknown subject id
// yields an empty list rather than a 404.
func (h *MaterialsHandler) ListSubjectMaterials(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.repo.ListBySubject(cctx, ctx.Param("id"))

	if err != nil {
		RespondInternal(ctx, "Could not list materials")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}
