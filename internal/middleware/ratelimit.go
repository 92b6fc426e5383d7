package middleware

import (
	"net/http"
	"sync"
	"time"
)

type window struct {
	count int
	until time.Time
}

// RateLimit caps requests per client IP within a fixed window. State lives
// in process memory; a restart resets all counters.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	windows := make(map[string]*window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			mu.Lock()
			win, ok := windows[ip]
			now := time.Now()
			if !ok || now.After(win.until) {
				win = &window{until: now.Add(per)}
				windows[ip] = win
			}
			if win.count >= limit {
				mu.Unlock()
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			win.count++
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
