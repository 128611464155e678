// Package feed streams simulation snapshots from the backend over
// WebSocket. The client reconnects with capped exponential backoff and
// delivers every decoded snapshot through a callback; the consumer keeps
// only the latest one.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tanklab/tankview/world"
)

// Reconnect backoff bounds.
const (
	backoffMin = 500 * time.Millisecond
	backoffMax = 15 * time.Second
)

// updateMessage is the wire envelope for a simulation update.
type updateMessage struct {
	Type string `json:"type"`
	world.Snapshot
}

// ParseUpdate decodes one wire message into a snapshot. Messages with an
// unexpected type field are rejected.
func ParseUpdate(data []byte) (world.Snapshot, error) {
	var msg updateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return world.Snapshot{}, fmt.Errorf("decoding update: %w", err)
	}
	if msg.Type != "" && msg.Type != "simulation_update" {
		return world.Snapshot{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	return msg.Snapshot, nil
}

// Client maintains the snapshot stream connection.
type Client struct {
	url        string
	onSnapshot func(world.Snapshot)

	connected atomic.Bool
	received  atomic.Int64
}

// NewClient creates a feed client delivering snapshots to onSnapshot.
// The callback runs on the feed goroutine and must not block.
func NewClient(url string, onSnapshot func(world.Snapshot)) *Client {
	return &Client{url: url, onSnapshot: onSnapshot}
}

// Connected reports whether a connection is currently up.
func (c *Client) Connected() bool { return c.connected.Load() }

// Received returns the number of snapshots delivered so far.
func (c *Client) Received() int64 { return c.received.Load() }

// Run connects and reads until ctx is cancelled, redialing on any
// connection loss. Always returns ctx.Err().
func (c *Client) Run(ctx context.Context) error {
	backoff := backoffMin

	for {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("feed dial failed", "url", c.url, "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > backoffMax {
				backoff = backoffMax
			}
			continue
		}

		slog.Info("feed connected", "url", c.url)
		backoff = backoffMin
		c.connected.Store(true)
		c.readLoop(ctx, conn)
		c.connected.Store(false)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("feed disconnected, reconnecting", "url", c.url)
	}
}

// readLoop consumes messages until the connection drops or ctx is
// cancelled. Malformed messages are logged and skipped, never fatal.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock the read when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
			conn.Close()
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("feed read error", "error", err)
			}
			return
		}

		snap, err := ParseUpdate(data)
		if err != nil {
			slog.Warn("skipping malformed update", "error", err)
			continue
		}

		c.received.Add(1)
		c.onSnapshot(snap)
	}
}
