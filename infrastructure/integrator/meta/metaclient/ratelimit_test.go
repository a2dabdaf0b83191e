package metaclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("Deve permitir requisições dentro do limite sem bloquear", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			err := limiter.Wait(context.Background())
			assert.NoError(t, err)
		}

		assert.Equal(t, 0, limiter.Available())
	})

	t.Run("Deve bloquear quando a janela está cheia", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		err := limiter.Wait(context.Background())
		assert.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Janela deslizante deve liberar espaço com o tempo", func(t *testing.T) {
		current := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
		limiter := &RateLimiter{
			maxRequests: 1,
			window:      time.Minute,
			now:         func() time.Time { return current },
		}

		err := limiter.Wait(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, limiter.Available())

		// Avançar o relógio além da janela libera o espaço
		current = current.Add(61 * time.Second)

		err = limiter.Wait(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Contexto cancelado deve interromper a espera", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		err := limiter.Wait(context.Background())
		assert.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = limiter.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
