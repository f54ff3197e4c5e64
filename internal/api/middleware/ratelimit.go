package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// RateLimiter ограничивает частоту запросов по пользователю (или IP без X-User-ID)
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    Logger
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает token bucket на requestsPerMinute запросов с запасом burst
func NewRateLimiter(requestsPerMinute, burst int, logger Logger) *RateLimiter {
	interval := time.Minute / time.Duration(requestsPerMinute)

	// Ключ, простаивающий дольше полного восполнения bucket, неотличим от нового
	idleTTL := time.Duration(burst) * interval
	if idleTTL < time.Minute {
		idleTTL = time.Minute
	}

	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(interval),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger,
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep удаляет простаивающие ключи, не чаще одного раза за idleTTL
// Вызывается под l.mu
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now

	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
}

// Middleware возвращает 429, когда лимит исчерпан
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rateKey(r)
		if !l.limiterFor(key).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: key=%s", r.Method, r.URL.Path, key)
			handlers.RespondErrorWithReason(w, http.StatusTooManyRequests, msgRateLimited, handlers.ReasonRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rateKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return fmt.Sprintf("user:%d", userID)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
