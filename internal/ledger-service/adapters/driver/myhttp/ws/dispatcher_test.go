package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courier-ledger/internal/ledger-service/core/domain/model"
	"courier-ledger/internal/mylogger"

	"github.com/gorilla/websocket"
)

func TestDispatcherBroadcastsEvents(t *testing.T) {
	d := NewDispatcher(mylogger.NewNop())

	srv := httptest.NewServer(d.SubscribeHandler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// registration races the Record below; wait for the client to land
	deadline := time.Now().Add(time.Second)
	for {
		d.RLock()
		n := len(d.clients)
		d.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("observer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	want := model.Event{
		Kind:    model.EventDriverRegistered,
		Subject: "d1",
		Data:    map[string]any{"account_id": "d1"},
	}
	if err := d.Record(context.Background(), want); err != nil {
		t.Fatalf("record: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got model.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Kind != want.Kind || got.Subject != want.Subject {
		t.Errorf("got %s/%s, want %s/%s", got.Kind, got.Subject, want.Kind, want.Subject)
	}
}
