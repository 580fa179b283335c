package port

import (
	"context"
	"testing"
	"time"
)

func TestSamplerAllowsOncePerWindow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := NewSampler(nil, time.Minute)
	s.now = func() time.Time { return now }

	ctx := context.Background()

	if !s.Allow(ctx, 1, 2) {
		t.Fatal("first sample in a window should be allowed")
	}
	if s.Allow(ctx, 1, 2) {
		t.Fatal("second sample in the same window should be suppressed")
	}

	now = now.Add(59 * time.Second)
	if s.Allow(ctx, 1, 2) {
		t.Fatal("sample at 59s should still be suppressed")
	}

	now = now.Add(2 * time.Second)
	if !s.Allow(ctx, 1, 2) {
		t.Fatal("sample after the window should be allowed again")
	}
}

func TestSamplerTracksPairsIndependently(t *testing.T) {
	s := NewSampler(nil, time.Minute)
	ctx := context.Background()

	if !s.Allow(ctx, 1, 1) {
		t.Fatal("first pair should be allowed")
	}
	if !s.Allow(ctx, 1, 2) {
		t.Fatal("different good at the same port should be allowed")
	}
	if !s.Allow(ctx, 2, 1) {
		t.Fatal("same good at a different port should be allowed")
	}
}
