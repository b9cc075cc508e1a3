package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vytor/genrequiz/internal/errors"
	"github.com/vytor/genrequiz/internal/logger"
)

// visitor pairs a learner's limiter with its last use, for cleanup.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LearnerLimiter is a token bucket per learner id.
type LearnerLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	expiry   time.Duration
}

// NewLearnerLimiter allows perSecond submissions per learner with the given
// burst. Learners idle for ten minutes are forgotten on cleanup.
func NewLearnerLimiter(perSecond float64, burst int) *LearnerLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &LearnerLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		expiry:   10 * time.Minute,
	}
}

func (l *LearnerLimiter) Allow(learnerID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	v, ok := l.visitors[learnerID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[learnerID] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

// Cleanup forgets learners idle since before now minus the expiry and
// returns how many were removed.
func (l *LearnerLimiter) Cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.expiry {
			delete(l.visitors, id)
			removed++
		}
	}
	return removed
}

// Run cleans up idle learners every minute until ctx is done.
func (l *LearnerLimiter) Run(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("rate_limit")
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := l.Cleanup(now); n > 0 {
				log.Debug("forgot %d idle learners", n)
			}
		}
	}
}

// Middleware rejects requests once the learner's bucket is empty. It must
// run after learnerMiddleware.
func (l *LearnerLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(learnerFromContext(r.Context())) {
			handleError(w, r, errors.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}
