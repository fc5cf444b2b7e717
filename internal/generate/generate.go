// Package generate produces short texts through a generative-text backend.
package generate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/intima/internal/metrics"
)

var (
	ErrRateLimited   = errors.New("generation rate limit exceeded")
	ErrEmptyResponse = errors.New("generator returned no text")
	ErrNotConfigured = errors.New("text generation is not configured")
)

type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// sweepEvery is also the idle time after which a refilled bucket is dropped.
const sweepEvery = 10 * time.Minute

// Limiter gives each account its own token bucket in front of a Generator.
type Limiter struct {
	next  Generator
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[uuid.UUID]*bucket
	lastSweep time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastUsed time.Time
}

func NewLimiter(next Generator, perMinute float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		next:      next,
		limit:     rate.Limit(perMinute / 60),
		burst:     burst,
		now:       time.Now,
		buckets:   make(map[uuid.UUID]*bucket),
		lastSweep: time.Now(),
	}
}

func (l *Limiter) limiterFor(accountID uuid.UUID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepEvery {
		l.sweep(now)
		l.lastSweep = now
	}

	b, ok := l.buckets[accountID]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[accountID] = b
	}

	b.lastUsed = now

	return b.lim
}

// sweep drops buckets that sat idle for a whole period and have refilled,
// since a fresh bucket would behave the same. Caller holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	for id, b := range l.buckets {
		if now.Sub(b.lastUsed) >= sweepEvery && b.lim.TokensAt(now) >= float64(l.burst) {
			delete(l.buckets, id)
		}
	}
}

// Generate refuses immediately with ErrRateLimited instead of waiting for a token.
func (l *Limiter) Generate(ctx context.Context, accountID uuid.UUID, p Prompt) (string, error) {
	if !l.limiterFor(accountID).Allow() {
		metrics.GenerateRequests.WithLabelValues("rate_limited").Inc()
		return "", ErrRateLimited
	}

	text, err := l.next.Generate(ctx, p)
	metrics.GenerateRequests.WithLabelValues(metrics.Outcome(err)).Inc()

	return text, err
}

// Disabled is the Generator used when no backend is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, Prompt) (string, error) {
	return "", ErrNotConfigured
}
