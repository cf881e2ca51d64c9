package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag writes payload as JSON with a strong ETag derived from
// its encoding. When the client's If-None-Match already names that ETag the
// body is skipped and a 304 goes out instead.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	etag, err := computeETag(payload)

	if err != nil {
		// an unencodable payload will fail again in ctx.JSON; let gin report it
		ctx.JSON(status, payload)
		return
	}

	ctx.Header("ETag", etag)

	if requestMatchesETag(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(status, payload)
}

func computeETag(payload interface{}) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(encoded)

	return `"` + hex.EncodeToString(digest[:]) + `"`, nil
}

// requestMatchesETag implements the If-None-Match comparison: a list of
// validators, a "*" wildcard, and weak tags compared by their opaque part.
func requestMatchesETag(header, current string) bool {
	header = strings.TrimSpace(header)

	if header == "" || current == "" {
		return false
	}

	if header == "*" {
		return true
	}

	want := stripWeakPrefix(current)

	for _, candidate := range strings.Split(header, ",") {
		if stripWeakPrefix(candidate) == want {
			return true
		}
	}

	return false
}

func stripWeakPrefix(tag string) string {
	tag = strings.TrimSpace(tag)

	if strings.HasPrefix(tag, "W/") {
		tag = strings.TrimSpace(strings.TrimPrefix(tag, "W/"))
	}

	return tag
}
