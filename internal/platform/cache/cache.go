// Package cache provides an optional Redis-backed response cache for the hot
// catalog endpoints. During the registration window the activity list (with
// live seat counts) is read far more often than it changes, so a short TTL
// takes most of that load off the database.
package cache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis with the response-cache helpers.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis. Returns nil when url is empty, meaning caching is
// disabled and the middleware becomes a no-op.
func New(url string, ttl time.Duration) (*Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// Middleware serves cached GET responses by path and query. Only 200s are
// stored; failures fall through to the handler on the next request. A nil
// receiver disables caching entirely.
func (c *Client) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		key := "respuesta:" + r.URL.Path + "?" + r.URL.RawQuery

		if body, err := c.rdb.Get(r.Context(), key).Bytes(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK && len(rec.body) > 0 {
			// Best effort; a failed SET only costs a cache miss.
			c.rdb.Set(r.Context(), key, rec.body, c.ttl)
		}
	})
}

type recorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == http.StatusOK {
		r.body = append(r.body, p...)
	}
	return r.ResponseWriter.Write(p)
}
