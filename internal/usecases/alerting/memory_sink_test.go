package alerting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

func TestMemorySink_Publish(t *testing.T) {
	t.Run("Deve reter os alertas e repassar para o sink interno", func(t *testing.T) {
		inner := &captureSink{}
		sink := NewMemorySink(inner)

		err := sink.Publish(context.Background(), &domain.AlertEvent{
			ID:       "A001",
			RunID:    "run-001",
			EntityID: "AS001",
			Metric:   domain.MetricROAS,
		})

		assert.NoError(t, err)
		assert.Len(t, sink.Latest(), 1)
		assert.Len(t, inner.events, 1)
	})

	t.Run("Nova execução deve substituir os alertas da anterior", func(t *testing.T) {
		sink := NewMemorySink(nil)

		sink.Publish(context.Background(), &domain.AlertEvent{ID: "A001", RunID: "run-001", EntityID: "AS001"})
		sink.Publish(context.Background(), &domain.AlertEvent{ID: "A002", RunID: "run-001", EntityID: "AS002"})
		assert.Len(t, sink.Latest(), 2)

		sink.Publish(context.Background(), &domain.AlertEvent{ID: "A003", RunID: "run-002", EntityID: "AS001"})

		events := sink.Latest()
		assert.Len(t, events, 1)
		assert.Equal(t, "run-002", events[0].RunID)
	})

	t.Run("Latest deve retornar uma cópia independente", func(t *testing.T) {
		sink := NewMemorySink(nil)

		sink.Publish(context.Background(), &domain.AlertEvent{ID: "A001", RunID: "run-001"})

		events := sink.Latest()
		events[0] = nil

		assert.NotNil(t, sink.Latest()[0])
	})
}
