package sink

import (
	"context"
	"errors"
	"testing"

	"courier-ledger/internal/ledger-service/core/domain/model"
)

type memSink struct {
	events []model.Event
	err    error
}

func (m *memSink) Record(ctx context.Context, event model.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func TestMultiRecordsToAllSinks(t *testing.T) {
	a, b := &memSink{}, &memSink{}
	m := NewMulti(a, b)

	ev := model.Event{Kind: model.EventDriverRegistered, Subject: "d1"}
	if err := m.Record(context.Background(), ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("fan-out incomplete: %d/%d", len(a.events), len(b.events))
	}
}

func TestMultiKeepsGoingOnFailure(t *testing.T) {
	boom := errors.New("boom")
	a := &memSink{err: boom}
	b := &memSink{}
	m := NewMulti(a, b)

	err := m.Record(context.Background(), model.Event{Kind: model.EventZoneRateUpdated})
	if !errors.Is(err, boom) {
		t.Errorf("error not propagated: %v", err)
	}
	if len(b.events) != 1 {
		t.Error("healthy sink skipped after failing sink")
	}
}
