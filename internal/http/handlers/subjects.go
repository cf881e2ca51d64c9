package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mjayaraman27/eduhub/internal/cache"
	"github.com/mjayaraman27/eduhub/internal/config"
	"github.com/mjayaraman27/eduhub/internal/domain/subject"
	"github.com/mjayaraman27/eduhub/internal/utils"
)

type SubjectsReader interface {
	List(ctx context.Context) ([]subject.Subject, error)
	GetByID(ctx context.Context, id bson.ObjectID) (subject.Subject, error)
}

// subjectsCatalogCap versions the cache key; it matches the store's listing cap.
const subjectsCatalogCap = 100

type SubjectsHandler struct {
	repo   SubjectsReader
	local  *cache.Cache
	shared *cache.Redis
}

func NewSubjectsHandler(repo SubjectsReader) *SubjectsHandler {
	return &SubjectsHandler{repo: repo}
}

// NewSubjectsHandlerWithCache layers an in-process TTL cache and, when
// shared is non-nil, a redis cache in front of the catalog store. Either
// tier may be nil.
func NewSubjectsHandlerWithCache(repo SubjectsReader, local *cache.Cache, shared *cache.Redis) *SubjectsHandler {
	return &SubjectsHandler{
		repo:   repo,
		local:  local,
		shared: shared,
	}
}

func (h *SubjectsHandler) ListSubjects(ctx *gin.Context) {
	key := utils.BuildSubjectsCatalogCacheKey(subjectsCatalogCap)

	if h.local != nil {
		if v, ok := h.local.Get(key); ok {
			if items, ok := v.([]subject.Subject); ok {
				RespondJSONWithETag(ctx, http.StatusOK, items)
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if h.shared != nil {
		var items []subject.Subject

		// a redis failure falls through to the store
		if hit, err := h.shared.GetJSON(cctx, key, &items); err == nil && hit {
			if h.local != nil {
				h.local.Set(key, items)
			}

			RespondJSONWithETag(ctx, http.StatusOK, items)
			return
		}
	}

	items, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list subjects")
		return
	}

	if h.local != nil {
		h.local.Set(key, items)
	}

	if h.shared != nil {
		_ = h.shared.SetJSON(cctx, key, items)
	}

	RespondJSONWithETag(ctx, http.StatusOK, items)
}

func (h *SubjectsHandler) GetSubjectByID(ctx *gin.Context) {
	id, err := bson.ObjectIDFromHex(ctx.Param("id"))

	if err != nil {
		RespondBadRequest(ctx, "Invalid subject ID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, subject.ErrNotFound) {
			RespondNotFound(ctx, "Subject not found")
			return
		}

		RespondInternal(ctx, "Could not fetch subject")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, s)
}
