package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// CacheLogger интерфейс для логирования кеша
type CacheLogger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// responseBuffer перехватывает ответ для записи в кеш
type responseBuffer struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *responseBuffer) WriteHeader(status int) {
	b.status = status
	b.ResponseWriter.WriteHeader(status)
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

// ResponseCache кеш ответов на запросы доступности в Redis.
// Ответы доступности дорогие (перебор боксов и слотов) и быстро устаревают,
// поэтому кешируются с коротким TTL. Ошибки Redis не мешают запросу,
// он просто обслуживается без кеша.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    CacheLogger
}

// NewResponseCache создает кеш ответов поверх Redis клиента
func NewResponseCache(client *redis.Client, ttl time.Duration, prefix string, log CacheLogger) *ResponseCache {
	return &ResponseCache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
		log:    log,
	}
}

// Middleware кеширует успешные GET-ответы.
// Заголовок X-Cache выставляется в HIT или MISS.
func (c *ResponseCache) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := c.key(r)

			cached, err := c.client.Get(r.Context(), key).Bytes()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}
			if err != redis.Nil {
				c.log.Warn("cache: redis get failed for key=%s: %v", key, err)
			}

			buf := &responseBuffer{ResponseWriter: w, status: http.StatusOK}
			buf.Header().Set("X-Cache", "MISS")

			next.ServeHTTP(buf, r)

			// Кешируем только успешные ответы
			if buf.status == http.StatusOK && buf.body.Len() > 0 {
				if err := c.client.Set(r.Context(), key, buf.body.Bytes(), c.ttl).Err(); err != nil {
					c.log.Warn("cache: redis set failed for key=%s: %v", key, err)
				} else {
					c.log.Debug("cache: stored response for key=%s, ttl=%s", key, c.ttl)
				}
			}
		})
	}
}

// key строит ключ кеша из метода, пути и query-параметров запроса
func (c *ResponseCache) key(r *http.Request) string {
	sum := sha1.Sum([]byte(r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery))
	return c.prefix + hex.EncodeToString(sum[:])
}
