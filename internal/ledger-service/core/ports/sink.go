package ports

import (
	"context"

	"courier-ledger/internal/ledger-service/core/domain/model"
)

// IEventSink receives one event per successful state transition, in commit
// order. A sink failure does not undo the transition.
type IEventSink interface {
	Record(ctx context.Context, event model.Event) error
}

// IEventArchive is the append-only persisted view of the stream that the
// poll surface reads from.
type IEventArchive interface {
	Append(ctx context.Context, event model.Event) error
	ListBySubject(ctx context.Context, subject string, limit int) ([]model.StoredEvent, error)
}
