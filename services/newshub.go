// Package services provides business logic services
package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/escolacolaco/backend/models"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024

	// Send buffer size
	sendBufferSize = 16

	// NATS subject carrying published news items
	newsSubject = "news.published"
)

// NewsHub pushes freshly published news to connected WebSocket clients.
// Publishers and subscribers meet on the embedded NATS server, so the
// hub works the same whether news is created in-process or elsewhere.
type NewsHub struct {
	natsConn *nats.Conn
	natsSub  *nats.Subscription

	clients   map[*NewsClient]bool
	clientsMu sync.RWMutex

	register   chan *NewsClient
	unregister chan *NewsClient

	published uint64
	statsMu   sync.Mutex
}

// NewsClient represents a WebSocket client on the live ticker
type NewsClient struct {
	hub        *NewsHub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
}

// NewNewsHub creates a news hub subscribed to the news subject
func NewNewsHub(natsConn *nats.Conn) (*NewsHub, error) {
	h := &NewsHub{
		natsConn:   natsConn,
		clients:    make(map[*NewsClient]bool),
		register:   make(chan *NewsClient),
		unregister: make(chan *NewsClient),
	}

	sub, err := natsConn.Subscribe(newsSubject, func(msg *nats.Msg) {
		h.broadcast(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	h.natsSub = sub

	return h, nil
}

// NewNewsClient creates a new client for the hub
func NewNewsClient(hub *NewsHub, conn *websocket.Conn, remoteAddr string) *NewsClient {
	return &NewsClient{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		remoteAddr: remoteAddr,
	}
}

// Register adds a client to the hub
func (h *NewsHub) Register(client *NewsClient) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *NewsHub) Run() {
	log.Println("📰 News hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			log.Printf("📰 Client connected: %s", client.remoteAddr)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Printf("📰 Client disconnected: %s", client.remoteAddr)
		}
	}
}

// PublishNews puts a news item on the wire for every connected client
func (h *NewsHub) PublishNews(item models.News) {
	data, err := json.Marshal(item)
	if err != nil {
		log.Printf("⚠️ Failed to encode news %d: %v", item.ID, err)
		return
	}
	if err := h.natsConn.Publish(newsSubject, data); err != nil {
		log.Printf("⚠️ Failed to publish news %d: %v", item.ID, err)
		return
	}
	h.statsMu.Lock()
	h.published++
	h.statsMu.Unlock()
}

// broadcast fans a message out to all clients, dropping slow ones
func (h *NewsHub) broadcast(data []byte) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full, skip this message for them
		}
	}
}

// Stats holds hub statistics
type Stats struct {
	Clients   int    `json:"clients"`
	Published uint64 `json:"published"`
}

// GetStats returns current hub statistics
func (h *NewsHub) GetStats() Stats {
	h.clientsMu.RLock()
	clients := len(h.clients)
	h.clientsMu.RUnlock()

	h.statsMu.Lock()
	published := h.published
	h.statsMu.Unlock()

	return Stats{Clients: clients, Published: published}
}

// ReadPump pumps control messages from the WebSocket connection.
// The ticker is one-way; reads only service pings and disconnects.
func (c *NewsClient) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ WebSocket error: %v", err)
			}
			break
		}
	}
}

// WritePump pumps news from the hub to the WebSocket connection
func (c *NewsClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
