package api

import (
	"bytes"
	"net/http"

	"github.com/dgraph-io/ristretto"
	"github.com/okian/gobu/pkg/metrics"
)

const (
	defaultCacheItems = 10_000
	cacheCounterRatio = 10
	cacheBufferItems  = 64
)

// responseCache keeps successful GET bodies keyed by path and raw query.
// The catalog never changes after Start, so entries are never invalidated.
// A nil cache passes requests straight through.
type responseCache struct {
	cache *ristretto.Cache
}

type cachedResponse struct {
	contentType string
	body        []byte
}

func newResponseCache(items int) (*responseCache, error) {
	if items <= 0 {
		return nil, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(items) * cacheCounterRatio,
		MaxCost:     int64(items),
		BufferItems: cacheBufferItems,
		// One unit per response; the item count is the bound.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &responseCache{cache: c}, nil
}

func (rc *responseCache) wrap(next http.HandlerFunc) http.HandlerFunc {
	if rc == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path + "?" + r.URL.RawQuery
		if v, ok := rc.cache.Get(key); ok {
			if resp, ok := v.(cachedResponse); ok {
				metrics.RecordCacheHit()
				w.Header().Set("Content-Type", resp.contentType)
				w.Header().Set("X-Cache", "hit")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(resp.body)
				return
			}
		}
		metrics.RecordCacheMiss()

		rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		if rec.status == http.StatusOK {
			rc.cache.Set(key, cachedResponse{
				contentType: w.Header().Get("Content-Type"),
				body:        rec.body.Bytes(),
			}, 1)
		}
	}
}

// wait blocks until buffered writes are applied.
func (rc *responseCache) wait() {
	if rc != nil {
		rc.cache.Wait()
	}
}

func (rc *responseCache) close() {
	if rc != nil {
		rc.cache.Close()
	}
}

// bodyRecorder tees the response body so it can be cached.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bodyRecorder) WriteHeader(code int) {
	b.status = code
	b.ResponseWriter.WriteHeader(code)
}

func (b *bodyRecorder) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}
