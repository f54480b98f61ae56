package ws

import (
	"context"

	"courier-ledger/internal/ledger-service/core/domain/model"

	"github.com/gorilla/websocket"
)

const egressBuffer = 16

type Client struct {
	ctx    context.Context
	conn   *websocket.Conn
	dis    *Dispatcher
	egress chan model.Event
}

func NewClient(ctx context.Context, conn *websocket.Conn, dis *Dispatcher) *Client {
	return &Client{
		ctx:    ctx,
		conn:   conn,
		dis:    dis,
		egress: make(chan model.Event, egressBuffer),
	}
}

// ReadMessage drains the connection; observers send nothing, so the first
// read error means the peer went away.
func (c *Client) ReadMessage() {
	defer c.dis.RemoveClient(c)

	c.conn.SetReadLimit(1024)

	// loop forever
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.dis.log.Action("readMessage").Warn("unexpected close", "err", err.Error())
			}
			break
		}
	}
}

func (c *Client) WriteMessage() {
	defer c.dis.RemoveClient(c)

	for {
		select {
		case <-c.ctx.Done():
			c.conn.Close()
			return
		case event, ok := <-c.egress:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
