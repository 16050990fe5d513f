// Package hub fans out status updates and camera frames to websocket
// viewers using a single goroutine that owns the client set.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/teslashibe/go-airpaint/internal/log"
)

// Message is one broadcast payload: a JSON status document, or a JPEG frame
// when Frame is set.
type Message struct {
	Frame bool
	Data  []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
// Only Run touches the client map's membership.
type Hub struct {
	name string
	log  *slog.Logger

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// latest is replayed to clients as they connect, so a viewer sees the
	// current state before the next update arrives
	latest  Message
	hasLast bool
	replay  bool

	mu      sync.RWMutex
	dropped atomic.Uint64
	running atomic.Bool
}

// New creates a hub. With replay set, the most recent message is sent to
// every newly registered client.
func New(name string, replay bool) *Hub {
	return &Hub{
		name:       name,
		log:        log.Component("hub").With("stream", name),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		replay:     replay,
	}
}

// Run owns the client set until ctx is done, then closes every client.
// A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	h.running.Store(true)
	defer func() {
		h.running.Store(false)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			if h.replay && h.hasLast {
				client.send <- h.latest
			}
			h.mu.Unlock()
			h.log.Info("client connected", "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client disconnected", "clients", count)

		case message := <-h.broadcast:
			h.mu.Lock()
			h.latest, h.hasLast = message, true
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow viewer: drop it rather than stall the others
					close(client.send)
					delete(h.clients, client)
					h.log.Warn("dropped slow client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues msg for every client. It never blocks the caller; when
// the queue is full the message is dropped and counted.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		if n := h.dropped.Add(1); n == 1 || n%100 == 0 {
			h.log.Warn("broadcast queue full, dropping", "dropped", n)
		}
	}
}

// BroadcastJSON encodes and broadcasts a JSON message
func (h *Hub) BroadcastJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(Message{Data: data})
	return nil
}

// BroadcastBinary broadcasts an encoded JPEG frame
func (h *Hub) BroadcastBinary(data []byte) {
	h.Broadcast(Message{Frame: true, Data: data})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many broadcasts were discarded.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// IsRunning returns whether the hub loop is active
func (h *Hub) IsRunning() bool {
	return h.running.Load()
}
