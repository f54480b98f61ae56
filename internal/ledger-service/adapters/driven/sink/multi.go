package sink

import (
	"context"
	"errors"

	"courier-ledger/internal/ledger-service/core/domain/model"
	"courier-ledger/internal/ledger-service/core/ports"
)

// Multi fans one recorded event out to every configured sink (broker,
// archive, websocket stream). All sinks are attempted even when one fails.
type Multi struct {
	sinks []ports.IEventSink
}

func NewMulti(sinks ...ports.IEventSink) *Multi {
	return &Multi{
		sinks: sinks,
	}
}

func (m *Multi) Record(ctx context.Context, event model.Event) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
