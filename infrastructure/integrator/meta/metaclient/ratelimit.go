package metaclient

import (
	"context"
	"sync"
	"time"
)

// RateLimiter limita as requisições a N por janela deslizante.
// Wait bloqueia até haver espaço na janela ou o contexto ser cancelado.
type RateLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	timestamps  []time.Time
	now         func() time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()

		now := l.now()
		cutoff := now.Add(-l.window)

		// Descartar timestamps fora da janela
		kept := l.timestamps[:0]
		for _, ts := range l.timestamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		l.timestamps = kept

		if len(l.timestamps) < l.maxRequests {
			l.timestamps = append(l.timestamps, now)
			l.mu.Unlock()
			return nil
		}

		waitFor := l.timestamps[0].Sub(cutoff)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitFor):
		}
	}
}

// Available retorna quantas requisições ainda cabem na janela atual
func (l *RateLimiter) Available() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	used := 0
	for _, ts := range l.timestamps {
		if ts.After(cutoff) {
			used++
		}
	}

	return l.maxRequests - used
}
