// Package web streams trace entries to websocket clients, so that the
// execution of a program can be followed from a browser.
package web

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/trace"
)

// Message types, sent as the first byte of every message.
const (
	// EntryMessage is followed by an entry encoded with
	// trace.Entry.AppendBinary.
	EntryMessage uint8 = 0x01
	// ClientClosing is sent by a client before it disconnects.
	ClientClosing uint8 = 0xFF
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub broadcasts trace entries to every connected client. It implements
// both trace.Tracer and http.Handler.
type Hub struct {
	clients   map[*Client]bool
	connected atomic.Int32

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	every uint64
	seen  uint64

	log log.Logger
}

// NewHub returns a new Hub that sends one of every n entries it is given.
// Entries are dropped rather than block the caller when the clients
// can't keep up.
func NewHub(every uint64, logger log.Logger) *Hub {
	if every == 0 {
		every = 1
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		every:      every,
		log:        logger,
	}
}

// Run handles client registration and broadcasting until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.remove(c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
			h.connected.Add(1)
			h.log.Infof("web: client %s connected", c.RemoteAddr)
		case c := <-h.unregister:
			if h.clients[c] {
				h.remove(c)
				h.log.Infof("web: client %s disconnected", c.RemoteAddr)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					// too slow to keep up
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	close(c.Send)
	delete(h.clients, c)
	h.connected.Add(-1)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.connected.Load())
}

// ServeHTTP upgrades the connection to a websocket and registers the
// client with the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrading connection: %v", err)
		return
	}

	c := newClient(h, conn, r.RemoteAddr)
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.ReadPump()
	go c.WritePump()
}

// Trace sends the entry to every connected client.
func (h *Hub) Trace(e trace.Entry) error {
	h.seen++
	if (h.seen-1)%h.every != 0 || h.Clients() == 0 {
		return nil
	}

	msg := e.AppendBinary(append(make([]byte, 0, trace.BinarySize+1+len(e.Instruction)), EntryMessage))
	select {
	case h.broadcast <- msg:
	default:
	}
	return nil
}
