package livefeed

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"broilers/models"

	"github.com/gorilla/websocket"
)

// AdminRoom receives every order event.
const AdminRoom = "admin"

// OrderRoom receives the events of one order, for the customer's
// confirmation page.
func OrderRoom(orderID string) string {
	return "order:" + orderID
}

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans order events out to the websocket clients subscribed to each
// room. Run owns the room map; everything else talks to it over channels.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					// slow client
					h.drop(c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.rooms {
				for c := range conns {
					h.drop(c)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(c *Client) {
	conns := h.rooms[c.Room]
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	close(c.Send)
	if len(conns) == 0 {
		delete(h.rooms, c.Room)
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Register adds c to its room. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.quit:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.quit:
	}
}

// Clients counts the clients currently in room.
func (h *Hub) Clients(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

func (h *Hub) send(ctx context.Context, room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.quit:
	case <-ctx.Done():
	}
}

// PublishOrderEvent pushes ev to the admin room and to the order's own
// room. Customers get the public view, never the operator's notification
// link or the full contact details.
func (h *Hub) PublishOrderEvent(ctx context.Context, ev models.OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("livefeed: cannot encode %s event: %v", ev.Type, err)
		return
	}
	h.send(ctx, AdminRoom, data)

	if data, err = json.Marshal(ev.Public()); err == nil {
		h.send(ctx, OrderRoom(ev.OrderID), data)
	}
}
