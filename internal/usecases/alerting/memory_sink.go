package alerting

import (
	"context"
	"sync"

	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// MemorySink retém os alertas da execução mais recente para consulta pela API,
// repassando cada evento para o sink interno. Uma nova execução substitui os
// alertas da anterior.
type MemorySink struct {
	inner Sink

	mutex     sync.Mutex
	lastRunID string
	events    []*domain.AlertEvent
}

func NewMemorySink(inner Sink) *MemorySink {
	return &MemorySink{
		inner:  inner,
		events: make([]*domain.AlertEvent, 0),
	}
}

func (s *MemorySink) Publish(ctx context.Context, event *domain.AlertEvent) error {
	s.mutex.Lock()
	if event.RunID != s.lastRunID {
		s.lastRunID = event.RunID
		s.events = s.events[:0]
	}
	s.events = append(s.events, event)
	s.mutex.Unlock()

	if s.inner != nil {
		return s.inner.Publish(ctx, event)
	}

	return nil
}

// Latest retorna uma cópia dos alertas da execução mais recente
func (s *MemorySink) Latest() []*domain.AlertEvent {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	events := make([]*domain.AlertEvent, len(s.events))
	copy(events, s.events)
	return events
}
