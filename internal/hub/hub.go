package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SKT-TRTR/zyrok-mobile-app/internal/config"
	pkglog "github.com/SKT-TRTR/zyrok-mobile-app/pkg/log"
)

// DisconnectHandler is called once when a client disconnects, before the
// client is evicted from its rooms.
type DisconnectHandler func(*Client)

// Client represents one connected WebSocket client. UserID is the claimed
// identity supplied at handshake time; it is empty for anonymous viewers
// and is never re-validated after admission.
type Client struct {
	ID                string
	UserID            string
	Hub               *Hub
	Conn              *websocket.Conn
	Send              chan []byte
	disconnectHandler DisconnectHandler

	// sendMu serializes enqueues against the hub closing Send, so a
	// handler still in flight for a departed connection cannot send on
	// a closed channel.
	sendMu sync.Mutex
	closed bool
}

// enqueue queues data for the write pump. It reports false when the
// queue is full or already closed.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue exactly once. Later enqueues are
// dropped silently.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// SetDisconnectHandler sets the handler to be called on disconnect.
func (c *Client) SetDisconnectHandler(handler DisconnectHandler) {
	c.disconnectHandler = handler
}

// Hub manages all WebSocket connections and per-video rooms. Room
// membership is only mutated under mu; delivery goes through the single
// Run loop, so a connection's outbound queue sees broadcasts to a room in
// the order they were issued.
type Hub struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client // roomID -> clientID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomMessage
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// roomMessage is a framed payload queued for fan-out. Global messages
// ignore RoomID and reach every connection.
type roomMessage struct {
	RoomID  string
	Message []byte
	Exclude string // client ID to skip, "" for none
	Global  bool
}

// NewHub creates a new Hub.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomMessage, 256),
		config:     cfg,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	l := pkglog.L()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l.Info().Str(pkglog.FieldClientID, client.ID).Str(pkglog.FieldUserID, client.UserID).Msg("client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				// Evict from every joined room; empty rooms are pruned.
				for roomID, members := range h.rooms {
					delete(members, client.ID)
					if len(members) == 0 {
						delete(h.rooms, roomID)
					}
				}
				delete(h.clients, client.ID)
				client.closeSend()
				l.Info().Str(pkglog.FieldClientID, client.ID).Msg("client disconnected")
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			if msg.Global {
				for clientID, client := range h.clients {
					if clientID == msg.Exclude {
						continue
					}
					h.deliver(client, msg.Message)
				}
			} else if members, ok := h.rooms[msg.RoomID]; ok {
				for clientID, client := range members {
					if clientID == msg.Exclude {
						continue
					}
					h.deliver(client, msg.Message)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// deliver enqueues without blocking; a client that cannot keep up is
// dropped rather than stalling the fan-out loop.
func (h *Hub) deliver(client *Client, message []byte) {
	if !client.enqueue(message) {
		go h.removeClient(client)
	}
}

// Register adds a client to the hub. Admission never fails; anonymous
// clients are allowed.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub and every room it joined.
// Safe to call more than once for the same client.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom adds a client to a room, creating the room if absent.
// Joining an already joined room is a no-op.
func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][client.ID] = client
	pkglog.L().Debug().Str(pkglog.FieldClientID, client.ID).Str(pkglog.FieldRoomID, roomID).Msg("client joined room")
}

// LeaveRoom removes a client from a room. Leaving a room the client never
// joined is a no-op. The last leave prunes the room.
func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[roomID]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	pkglog.L().Debug().Str(pkglog.FieldClientID, client.ID).Str(pkglog.FieldRoomID, roomID).Msg("client left room")
}

// BroadcastToRoom sends a message to all clients in a room, skipping
// exclude when non-empty.
func (h *Hub) BroadcastToRoom(roomID string, message interface{}, exclude string) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.broadcast <- &roomMessage{
		RoomID:  roomID,
		Message: data,
		Exclude: exclude,
	}
	return nil
}

// BroadcastAll sends a message to every connection regardless of room
// membership.
func (h *Hub) BroadcastAll(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.broadcast <- &roomMessage{
		Message: data,
		Global:  true,
	}
	return nil
}

// SendToClient sends a message to a single client, if still connected.
func (h *Hub) SendToClient(clientID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}

	h.deliver(client, data)
	return nil
}

// RoomSize returns the current member count of a room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// InRoom reports whether the client is currently a member of the room.
func (h *Hub) InRoom(clientID, roomID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[roomID][clientID]
	return ok
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}

// ReadPump pumps messages from the WebSocket connection into handler.
// It runs the handler inline, so one connection's events are processed
// strictly in arrival order.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		if c.disconnectHandler != nil {
			c.disconnectHandler(c)
		}
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Hub.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Hub.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Hub.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				pkglog.L().Error().Err(err).Str(pkglog.FieldClientID, c.ID).Msg("websocket error")
			}
			break
		}

		handler(c, message)
	}
}

// WritePump pumps messages from the hub to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.Hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage sends a message to this client only. Delivery is best
// effort; a departed or backlogged connection is skipped silently.
func (c *Client) SendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.enqueue(data)
	return nil
}
