package port

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fareast-server/internal/shared/redis"
)

// Sampler gates price-history writes to at most one sample per port/good
// per window. Backed by Redis when available so the window survives
// restarts and is shared across instances; an in-process map otherwise.
type Sampler struct {
	redis  *redis.Client
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewSampler(redisClient *redis.Client, window time.Duration) *Sampler {
	return &Sampler{
		redis:  redisClient,
		window: window,
		now:    time.Now,
		seen:   make(map[string]time.Time),
	}
}

// Allow reports whether a sample for the pair should be recorded now, and
// if so starts a new window. Redis errors fall back to the local map so a
// cache outage never blocks the port view.
func (s *Sampler) Allow(ctx context.Context, portID, goodID int) bool {
	key := fmt.Sprintf("price_sample:%d:%d", portID, goodID)

	if s.redis != nil {
		ok, err := s.redis.SetNX(ctx, key, 1, s.window).Result()
		if err == nil {
			return ok
		}
		slog.Warn("Price sampler falling back to in-memory window",
			"component", "price_sampler", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.seen[key]; ok && now.Sub(last) < s.window {
		return false
	}

	// Drop expired windows so the map stays proportional to the catalog.
	for k, last := range s.seen {
		if now.Sub(last) >= s.window {
			delete(s.seen, k)
		}
	}

	s.seen[key] = now
	return true
}
