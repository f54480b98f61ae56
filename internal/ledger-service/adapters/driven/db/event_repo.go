package db

import (
	"context"
	"encoding/json"

	"courier-ledger/internal/ledger-service/core/domain/model"
)

const defaultListLimit = 100

// EventRepo is the append-only archive of the notification stream. Rows are
// never updated or deleted; ListBySubject serves the poll surface.
type EventRepo struct {
	db *DB
}

func NewEventRepo(db *DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func (er *EventRepo) Append(ctx context.Context, event model.Event) error {
	q := `
	INSERT INTO ledger_events(created_at, kind, subject, data)
	VALUES ($1, $2, $3, $4)
	`
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}

	conn := er.db.conn
	_, err = conn.Exec(ctx, q, event.EmittedAt, event.Kind, event.Subject, data)
	return err
}

func (er *EventRepo) ListBySubject(ctx context.Context, subject string, limit int) ([]model.StoredEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := `
	SELECT
		id, created_at, kind, subject, data
	FROM
		ledger_events
	WHERE
		subject = $1
	ORDER BY created_at ASC
	LIMIT $2
	`
	conn := er.db.conn
	rows, err := conn.Query(ctx, q, subject, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.StoredEvent
	for rows.Next() {
		var ev model.StoredEvent
		if err := rows.Scan(&ev.Id, &ev.CreatedAt, &ev.Kind, &ev.Subject, &ev.Data); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Record lets the archive sit in the fan-out sink alongside the broker.
func (er *EventRepo) Record(ctx context.Context, event model.Event) error {
	return er.Append(ctx, event)
}
