package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/rewind-arcade/internal/metrics"
)

const (
	// MaxSpectatorsTotal caps open WebSocket connections.
	MaxSpectatorsTotal = 500

	// MaxSpectatorsPerIP caps open WebSocket connections per client IP.
	MaxSpectatorsPerIP = 10

	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// message is the envelope written to spectators.
type message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	ip   string
	send chan []byte
}

// Hub fans spectator messages out to WebSocket clients. A slow client
// drops messages instead of stalling the others.
type Hub struct {
	clients    map[*wsClient]struct{}
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	done       chan struct{}
	mu         sync.RWMutex

	limiter  *ConnLimiter
	origins  []string
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHub creates a hub. origins extends the localhost origins allowed to
// connect from a browser.
func NewHub(origins []string, logger *log.Logger) *Hub {
	if logger == nil {
		logger = newLogger()
	}
	h := &Hub{
		clients:    make(map[*wsClient]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		done:       make(chan struct{}),
		limiter:    NewConnLimiter(MaxSpectatorsPerIP),
		origins:    origins,
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if allowedOrigin(origin, h.origins) {
				return true
			}
			h.logger.Warn("websocket origin rejected", "origin", origin)
			metrics.RecordConnectionRejected("origin")
			return false
		},
	}
	return h
}

// Run owns the client set until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				h.drop(c)
			}
			h.mu.Unlock()
			metrics.UpdateSpectators(0)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("spectator connected", "ip", c.ip, "total", count)
			metrics.UpdateSpectators(count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
			count := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("spectator disconnected", "ip", c.ip, "remaining", count)
			metrics.UpdateSpectators(count)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

// drop removes c. Callers hold mu.
func (h *Hub) drop(c *wsClient) {
	delete(h.clients, c)
	close(c.send)
	h.limiter.Release(c.ip)
}

// Publish queues a message for every client. It never blocks; when the
// queue is full the message is skipped.
func (h *Hub) Publish(event string, data any) {
	if h.ClientCount() == 0 {
		return
	}
	b, err := json.Marshal(message{Event: event, Data: data})
	if err != nil {
		h.logger.Error("cannot encode spectator message", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- b:
	default:
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades a spectator connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxSpectatorsTotal {
		metrics.RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.limiter.Acquire(ip) {
		h.logger.Warn("spectator rejected: per-IP limit", "ip", ip)
		metrics.RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "ip", ip, "error", err)
		h.limiter.Release(ip)
		return
	}

	c := &wsClient{conn: conn, ip: ip, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		h.limiter.Release(ip)
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// writePump is the only writer on c.conn.
func (h *Hub) writePump(c *wsClient) {
	defer c.conn.Close()
	for msg := range c.send {
		//nolint:errcheck // A failed deadline surfaces on the write below
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
		metrics.IncrementWSMessages()
	}
	//nolint:errcheck // Best-effort close frame
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// readPump discards client messages and unregisters on disconnect.
func (h *Hub) readPump(c *wsClient) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
