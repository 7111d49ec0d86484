package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/hexa-dashboard-api/pkg/log"
	"golang.org/x/time/rate"
)

const (
	rateLimitedPrefix = "/v1/"
	visitorTTL        = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter mantém um token bucket por IP. Visitantes parados há mais de
// visitorTTL são descartados na próxima varredura.
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPRateLimiter(perMinute int, now func() time.Time) *ipRateLimiter {
	return &ipRateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		lastSweep: now(),
		now:       now,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > visitorTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware limita as rotas /v1 a perMinute requisições por minuto por IP.
// perMinute zero desliga o limite.
func RateLimitMiddleware(perMinute int) func(http.Handler) http.Handler {
	return rateLimit(perMinute, time.Now)
}

func rateLimit(perMinute int, now func() time.Time) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := newIPRateLimiter(perMinute, now)
	retryAfter := strconv.Itoa(int(time.Minute.Seconds()) / perMinute)
	if retryAfter == "0" {
		retryAfter = "1"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, rateLimitedPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !limiter.allow(ip) {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"client_ip": ip,
					"path":      r.URL.Path,
				}).Warn("Limite de requisições excedido")

				w.Header().Set("Retry-After", retryAfter)
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "Limite de requisições excedido.", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
