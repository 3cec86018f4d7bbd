package chat

import (
	"context"
	"log/slog"

	"blog-backend/internal/metrics"
	"blog-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const sendBuffer = 256

// Client is one connected socket as seen by the hub.
type Client struct {
	send chan []byte
}

func NewClient() *Client {
	return &Client{send: make(chan []byte, sendBuffer)}
}

// Send yields encoded frames until the hub lets go of the client.
func (c *Client) Send() <-chan []byte { return c.send }

// peer is the hub's private state for a client. Until the history frame
// goes out the client is pending and live messages pile up in backlog.
type peer struct {
	ready   bool
	backlog []models.ChatMessage
	seen    map[bson.ObjectID]struct{}
}

type replayReq struct {
	client  *Client
	history []models.ChatMessage
}

type Hub struct {
	clients map[*Client]*peer

	register   chan *Client
	unregister chan *Client
	ready      chan replayReq
	broadcast  chan models.ChatMessage
	done       chan struct{}

	log *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]*peer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ready:      make(chan replayReq),
		broadcast:  make(chan models.ChatMessage),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			h.drop(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = &peer{}
			metrics.ChatConnections.Inc()
		case c := <-h.unregister:
			h.drop(c)
		case r := <-h.ready:
			h.replay(r.client, r.history)
		case m := <-h.broadcast:
			h.fanout(m)
		}
	}
}

// Register adds c as pending. It returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		close(c.send)
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Ready hands the hub the history for c. The hub sends it, then whatever
// arrived while c was pending and is not already part of the history.
func (h *Hub) Ready(c *Client, history []models.ChatMessage) {
	select {
	case h.ready <- replayReq{client: c, history: history}:
	case <-h.done:
	}
}

// Broadcast delivers m to every connected client.
func (h *Hub) Broadcast(m models.ChatMessage) {
	select {
	case h.broadcast <- m:
	case <-h.done:
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.ChatConnections.Dec()
}

// push queues a frame, dropping a client whose buffer is full.
func (h *Hub) push(c *Client, frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		h.log.Warn("chat client too slow, dropping")
		metrics.ChatDropped.Inc()
		h.drop(c)
		return false
	}
}

func (h *Hub) replay(c *Client, history []models.ChatMessage) {
	p, ok := h.clients[c]
	if !ok || p.ready {
		return
	}
	if history == nil {
		history = []models.ChatMessage{}
	}

	p.seen = make(map[bson.ObjectID]struct{}, len(history))
	for _, m := range history {
		p.seen[m.ID] = struct{}{}
	}
	p.ready = true

	frame, err := encode(EventHistory, history)
	if err != nil {
		h.log.Error("encode chat history", "err", err)
		h.drop(c)
		return
	}
	if !h.push(c, frame) {
		return
	}

	backlog := p.backlog
	p.backlog = nil
	for _, m := range backlog {
		if _, dup := p.seen[m.ID]; dup {
			continue
		}
		frame, err := encode(EventMessage, m)
		if err != nil {
			h.log.Error("encode chat message", "err", err)
			continue
		}
		if !h.push(c, frame) {
			return
		}
	}
}

func (h *Hub) fanout(m models.ChatMessage) {
	frame, err := encode(EventMessage, m)
	if err != nil {
		h.log.Error("encode chat message", "err", err)
		return
	}

	for c, p := range h.clients {
		if !p.ready {
			if len(p.backlog) >= sendBuffer {
				metrics.ChatDropped.Inc()
				h.drop(c)
				continue
			}
			p.backlog = append(p.backlog, m)
			continue
		}
		if _, dup := p.seen[m.ID]; dup {
			continue
		}
		h.push(c, frame)
	}
}
