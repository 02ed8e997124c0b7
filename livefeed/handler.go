package livefeed

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxInboundSize = 512
)

// TokenCheck validates the admin token passed in the query string;
// browsers cannot set headers on websocket requests.
type TokenCheck func(token string) error

type Handler struct {
	hub      *Hub
	check    TokenCheck
	upgrader websocket.Upgrader
}

// NewHandler accepts origins for which allowOrigin returns true. A nil
// allowOrigin accepts every origin.
func NewHandler(hub *Hub, check TokenCheck, allowOrigin func(*http.Request) bool) *Handler {
	if allowOrigin == nil {
		allowOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub:      hub,
		check:    check,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
	}
}

// AdminFeed streams every order event to an authenticated dashboard.
func (h *Handler) AdminFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.check == nil || h.check(r.URL.Query().Get("token")) != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	h.serve(w, r, AdminRoom)
}

// OrderFeed streams the events of a single order.
func (h *Handler) OrderFeed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.serve(w, r, OrderRoom(ps.ByName("id")))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("livefeed upgrade:", err)
		return
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 32),
		Room: room,
	}
	if !h.hub.Register(client) {
		conn.Close()
		return
	}
	go writePump(client)
	go readPump(client, h.hub)
}

func writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the peer going away; the feed is one-way.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxInboundSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
