// Package events streams committed ledger operations to WebSocket subscribers.
package events

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"zerah-finance/internal/core/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	MessageTypeCommitted = "committed"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBuffer     = 64
	broadcastQueue = 100
)

// ErrHubStopped is returned by ServeWS once Run has returned.
var ErrHubStopped = errors.New("events: hub stopped")

// Message is the JSON frame pushed to subscribers.
type Message struct {
	Type        string              `json:"type"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
	Wallets     domain.Wallets      `json:"wallets,omitempty"`
	SentAt      time.Time           `json:"sent_at"`
}

// Hub fans commit events out to every connected client. A single Run
// goroutine owns the client set.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan Message
	done       chan struct{}
	clients    map[*client]struct{}
	count      atomic.Int64
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

// NewHub creates a Hub. Call Run before serving connections.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *client, broadcastQueue),
		unregister: make(chan *client, broadcastQueue),
		broadcast:  make(chan Message, broadcastQueue),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Run serves register, unregister and broadcast requests until ctx is done,
// then disconnects every client. Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.log.Info().Str("client_id", c.id).Int("connection_count", len(h.clients)).Msg("websocket client registered")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Info().Str("client_id", c.id).Int("connection_count", len(h.clients)).Msg("websocket client unregistered")
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn().Str("client_id", c.id).Msg("websocket client too slow, disconnecting")
					h.drop(c)
				}
			}

		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.log.Info().Msg("websocket hub stopped")
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
}

// ClientCount reports the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// OnCommitted queues the commit for broadcast. It never blocks; when the
// queue is full the event is dropped.
func (h *Hub) OnCommitted(_ context.Context, commit domain.Commit) error {
	tx := commit.Transaction
	msg := Message{
		Type:        MessageTypeCommitted,
		Transaction: &tx,
		Wallets:     commit.Wallets.Clone(),
		SentAt:      time.Now().UTC(),
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("tx_id", tx.ID).Msg("broadcast queue full, dropping commit event")
	}
	return nil
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		id:   uuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan Message, sendBuffer),
	}
	if !h.join(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return ErrHubStopped
	}

	go c.writePump()
	go c.readPump()
	return nil
}

// join hands c to Run. It reports false once the hub has stopped.
func (h *Hub) join(c *client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave hands c back to Run, or gives up once the hub has stopped.
func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// readPump discards inbound frames and unregisters the client once the
// connection fails.
func (c *client) readPump() {
	defer c.hub.leave(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn().Err(err).Str("client_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
	}
}

// writePump is the only writer on conn.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.hub.log.Warn().Err(err).Str("client_id", c.id).Msg("failed to send websocket message")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		// Covers a client that registered just as Run returned.
		case <-c.hub.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
