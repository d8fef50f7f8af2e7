package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/PuraFome/fodinha/game/engine"
	"github.com/PuraFome/fodinha/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Per-client outbound buffer.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client represents one WebSocket connection. Each connection owns a player
// identity for its whole lifetime and is attached to at most one game.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	gameID   string
}

// Hub maintains the set of active clients and routes broadcasts to the
// connections attached to each game. It implements service.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	games   map[string]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	service service.GameService
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		games:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetService wires the command handler. The hub and service reference each
// other (hub dispatches commands in, service broadcasts states out), so the
// service is attached after both exist.
func (h *Hub) SetService(svc service.GameService) {
	h.service = svc
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// ServeWS upgrades an HTTP request, assigns the connection a player
// identity, and starts its pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		playerID: uuid.NewString(),
	}

	h.register <- client
	client.enqueue(welcomeMessage{Type: "welcome", PlayerID: client.playerID})

	go client.writePump()
	go client.readPump()
}

// BroadcastState sends each seated player their own redacted snapshot.
func (h *Hub) BroadcastState(gameID string, views map[string]*engine.StateForPlayer) {
	h.mu.RLock()
	var stale []*Client
	for client := range h.games[gameID] {
		view := views[client.playerID]
		if view == nil {
			continue
		}
		data, err := json.Marshal(stateMessage{
			Type:        "game_state",
			Game:        view.Game,
			PlayerID:    view.PlayerID,
			PrivateHand: view.PrivateHand,
		})
		if err != nil {
			log.Printf("Failed to marshal game_state: %v", err)
			continue
		}
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}
}

// BroadcastEvent sends one identical event to every connection in a game.
func (h *Hub) BroadcastEvent(gameID string, event string, payload interface{}) {
	data, err := json.Marshal(eventMessage{Type: event, Data: payload})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	var stale []*Client
	for client := range h.games[gameID] {
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}
}

// registerClient tracks a fresh connection (not yet in any game).
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	log.Printf("Client %s connected (total clients: %d)", client.playerID, h.clientCount())
}

// unregisterClient drops a connection from the hub and its game set.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	h.detachLocked(client)
	close(client.send)

	log.Printf("Client %s disconnected (total clients: %d)", client.playerID, len(h.clients))
}

// attachToGame moves a client into a game's broadcast set.
func (h *Hub) attachToGame(client *Client, gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detachLocked(client)
	if h.games[gameID] == nil {
		h.games[gameID] = make(map[*Client]bool)
	}
	h.games[gameID][client] = true
	client.gameID = gameID
}

// detachFromGame removes a client from its game's broadcast set.
func (h *Hub) detachFromGame(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(client)
}

func (h *Hub) detachLocked(client *Client) {
	if client.gameID == "" {
		return
	}
	if clients, ok := h.games[client.gameID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.games, client.gameID)
		}
	}
	client.gameID = ""
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handleCommand applies one inbound frame. Rejections go back to the
// originating connection only; accepted commands broadcast through the
// service.
func (h *Hub) handleCommand(c *Client, cmd *command) {
	if h.service == nil {
		c.sendError("server not ready")
		return
	}
	ctx := context.Background()

	var err error
	switch cmd.Type {
	case cmdCreateGame:
		var gameID string
		gameID, err = h.service.CreateGame(ctx, c.playerID, cmd.PlayerName, cmd.MaxPlayers)
		if err == nil {
			h.attachToGame(c, gameID)
			c.sendSnapshot(h.service, gameID)
		}

	case cmdJoinGame:
		err = h.service.JoinGame(ctx, cmd.GameID, c.playerID, cmd.PlayerName)
		if err == nil {
			h.attachToGame(c, cmd.GameID)
			c.sendSnapshot(h.service, cmd.GameID)
		}

	case cmdLeaveGame:
		if c.gameID != "" {
			err = h.service.LeaveGame(ctx, c.gameID, c.playerID)
			h.detachFromGame(c)
		}

	case cmdSetReady:
		err = h.service.SetReady(ctx, c.gameID, c.playerID, cmd.Ready)

	case cmdStartGame:
		err = h.service.StartGame(ctx, c.gameID, c.playerID)

	case cmdPlaceBid:
		err = h.service.PlaceBid(ctx, c.gameID, c.playerID, cmd.Bid)

	case cmdConfirmBid:
		err = h.service.ConfirmBid(ctx, c.gameID, c.playerID)

	case cmdPlayCard:
		if cmd.Card == nil {
			err = engine.ErrInvalidCard
		} else {
			err = h.service.PlayCard(ctx, c.gameID, c.playerID, *cmd.Card)
		}

	default:
		c.sendError("unknown message type")
		return
	}

	if err != nil {
		c.sendError(err.Error())
	}
}

// readPump pumps frames from the WebSocket connection into the command
// handler. A dropped connection counts as leaving the game.
func (c *Client) readPump() {
	defer func() {
		if c.gameID != "" && c.hub.service != nil {
			c.hub.service.LeaveGame(context.Background(), c.gameID, c.playerID)
		}
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
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.sendError("invalid message format")
			continue
		}
		c.hub.handleCommand(c, &cmd)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
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
				// The hub closed the channel
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

// enqueue marshals a frame onto the client's send buffer.
func (c *Client) enqueue(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(message string) {
	c.enqueue(errorMessage{Type: "error", Message: message})
}

// sendSnapshot pushes the client its own redacted view, used right after
// create/join so the new connection doesn't wait for the next broadcast.
func (c *Client) sendSnapshot(svc service.GameService, gameID string) {
	snap, err := svc.Snapshot(context.Background(), gameID, c.playerID)
	if err != nil {
		return
	}
	c.enqueue(stateMessage{
		Type:        "game_state",
		Game:        snap.Game,
		PlayerID:    snap.PlayerID,
		PrivateHand: snap.PrivateHand,
	})
}
