package utils

import "strconv"

// BuildSubjectsCatalogCacheKey versions the cached catalog payload so a cap
// change never serves a stale shape.
func BuildSubjectsCatalogCacheKey(limit int) string {
	return "subjects:catalog:v1:limit=" + strconv.Itoa(limit)
}
