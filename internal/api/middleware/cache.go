package middleware

import (
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

// ResponseCache кеш успешных GET ответов в памяти
type ResponseCache struct {
	store *cache.Cache
	ttl   time.Duration
}

// NewResponseCache создает кеш с временем жизни ttl и периодом очистки cleanup
func NewResponseCache(ttl, cleanup time.Duration) *ResponseCache {
	return &ResponseCache{
		store: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Flush сбрасывает весь кеш
func (c *ResponseCache) Flush() {
	c.store.Flush()
}

// Middleware отдает GET ответы из кеша, ключ - URI запроса
func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if item, found := c.store.Get(key); found {
			cached := item.(cachedResponse)
			for k, v := range cached.headers {
				w.Header()[k] = v
			}
			w.WriteHeader(cached.status)
			_, _ = w.Write(cached.body)
			return
		}

		bw := &bodyWriter{statusWriter: newStatusWriter(w)}
		next.ServeHTTP(bw, r)

		if bw.status >= 200 && bw.status < 300 {
			c.store.Set(key, cachedResponse{
				status:  bw.status,
				headers: bw.Header().Clone(),
				body:    bw.body.Bytes(),
			}, c.ttl)
		}
	})
}

// FlushOnWrite сбрасывает кеш после успешного изменяющего запроса
func (c *ResponseCache) FlushOnWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		if sw.status >= 200 && sw.status < 300 {
			c.Flush()
		}
	})
}
