package middleware

import (
	"net/http"
	"strings"
)

const (
	cacheNoStore   = "no-store"
	cachePrivate   = "private, no-store, max-age=0"
	cacheHashed    = "public, max-age=31536000, immutable"
	cacheAsset     = "public, max-age=3600, must-revalidate"
	cacheImage     = "public, max-age=604800"
	cacheStaticAny = "public, max-age=3600"
)

// CacheControl sets Cache-Control by route. Dashboard pages and API
// responses carry respondent data and are never stored by shared caches.
type CacheControl struct{}

func NewCacheControl() *CacheControl {
	return &CacheControl{}
}

func (c *CacheControl) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		switch {
		case strings.HasPrefix(path, "/static/"):
			c.setStaticCacheHeaders(w, path)

		case strings.HasPrefix(path, "/api/"), path == "/" || path == "":
			w.Header().Set("Cache-Control", cachePrivate)
			w.Header().Set("Pragma", "no-cache")

		default:
			w.Header().Set("Cache-Control", cacheNoStore)
		}

		next.ServeHTTP(w, r)
	})
}

// setStaticCacheHeaders treats files under /static/dist/ as content-hashed.
func (c *CacheControl) setStaticCacheHeaders(w http.ResponseWriter, path string) {
	lowerPath := strings.ToLower(path)

	switch {
	case strings.HasPrefix(lowerPath, "/static/dist/"):
		w.Header().Set("Cache-Control", cacheHashed)
	case strings.HasSuffix(lowerPath, ".css"), strings.HasSuffix(lowerPath, ".js"):
		w.Header().Set("Cache-Control", cacheAsset)
	case isImageAsset(lowerPath):
		w.Header().Set("Cache-Control", cacheImage)
	default:
		w.Header().Set("Cache-Control", cacheStaticAny)
	}
}

func isImageAsset(path string) bool {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".svg", ".woff", ".woff2"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
