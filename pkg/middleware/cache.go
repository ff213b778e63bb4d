package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "httpcache:"

// cachedResponse is the serialized form stored in Redis.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// cacheRecorder buffers the response so it can be stored after serving.
type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	buf        bytes.Buffer
}

func (cr *cacheRecorder) WriteHeader(code int) {
	cr.statusCode = code
	cr.ResponseWriter.WriteHeader(code)
}

func (cr *cacheRecorder) Write(b []byte) (int, error) {
	cr.buf.Write(b)
	return cr.ResponseWriter.Write(b)
}

// ResponseCache returns middleware that caches successful GET responses in
// Redis, keyed by method and full request URI, for the given TTL. Non-GET
// requests and non-200 responses pass through uncached. Redis failures are
// logged and degrade to serving uncached.
func ResponseCache(client *redis.Client, ttl time.Duration, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKeyPrefix + r.Method + ":" + r.URL.RequestURI()

			if data, err := client.Get(r.Context(), key).Bytes(); err == nil {
				var cached cachedResponse
				if err := json.Unmarshal(data, &cached); err == nil {
					w.Header().Set("Content-Type", cached.ContentType)
					w.Header().Set("X-Cache", "HIT")
					w.WriteHeader(cached.Status)
					_, _ = w.Write(cached.Body)
					return
				}
			} else if !errors.Is(err, redis.Nil) {
				l.WarnContext(r.Context(), "response cache read failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}

			rec := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			rec.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			if rec.statusCode != http.StatusOK {
				return
			}

			entry := cachedResponse{
				Status:      rec.statusCode,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.buf.Bytes(),
			}
			data, err := json.Marshal(entry)
			if err != nil {
				return
			}

			// Store outside the request context so client disconnects don't
			// abort the write.
			storeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := client.Set(storeCtx, key, data, ttl).Err(); err != nil {
				l.Warn("response cache write failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}
		})
	}
}
