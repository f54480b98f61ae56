package ws

import (
	"context"
	"net/http"
	"sync"

	"courier-ledger/internal/ledger-service/core/domain/model"
	"courier-ledger/internal/mylogger"

	"github.com/gorilla/websocket"
)

// ================================================================================================== //
// websocketUpgrader is used to upgrade incomming HTTP requests into a persitent websocket connection //
// ================================================================================================== //
var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ClientList is a map used to help manage a map of clients
type ClientList map[*Client]bool

// Dispatcher broadcasts every recorded ledger event to all subscribed
// observers. It sits in the fan-out sink next to the broker and the archive.
type Dispatcher struct {
	clients ClientList
	sync.RWMutex
	log mylogger.Logger
}

func NewDispatcher(log mylogger.Logger) *Dispatcher {
	return &Dispatcher{
		clients: make(ClientList),
		log:     log,
	}
}

// SubscribeHandler upgrades the request and registers the observer for the
// full event stream.
func (d *Dispatcher) SubscribeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.log.Action("subscribeHandler")

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("cannot upgrade", err)
			return
		}

		client := NewClient(r.Context(), conn, d)
		d.AddClient(client)
		go client.ReadMessage()
		go client.WriteMessage()

		log.Info("observer subscribed", "remote", conn.RemoteAddr().String())
	}
}

// Record implements the event sink: every observer gets the event on its
// egress channel. A slow observer is dropped rather than allowed to block
// the stream.
func (d *Dispatcher) Record(ctx context.Context, event model.Event) error {
	d.RLock()
	defer d.RUnlock()

	for client := range d.clients {
		select {
		case client.egress <- event:
		default:
			go d.RemoveClient(client)
		}
	}
	return nil
}

func (d *Dispatcher) AddClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	d.clients[client] = true
}

func (d *Dispatcher) RemoveClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if _, ok := d.clients[client]; ok {
		client.conn.Close()
		delete(d.clients, client)
	}
}
