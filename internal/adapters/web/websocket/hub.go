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

	"github.com/lcalzada-xor/towermap/internal/core/domain"
	"github.com/lcalzada-xor/towermap/internal/core/ports"
	"github.com/lcalzada-xor/towermap/internal/telemetry"
)

// Outbound message types.
const (
	TypeOverlayAdd    = "overlay.add"
	TypeOverlayRemove = "overlay.remove"
	TypeMapView       = "map.view"
	TypeProgressShow  = "progress.show"
	TypeProgressSet   = "progress.set"
	TypeProgressHide  = "progress.hide"
	TypeSummary       = "summary"
	TypeNotice        = "notice"
	TypeReadout       = "readout"
	TypeStateSync     = "state.sync"
)

// Inbound message types.
const (
	TypeMapClick    = "map.click"
	TypeMapPointer  = "map.pointer"
	TypeMarkerClick = "marker.click"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many messages a client may lag behind before it is dropped.
	sendBuffer = 256
)

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// StateSync is sent to each client when it connects.
type StateSync struct {
	ClientID string              `json:"client_id"`
	State    domain.SessionState `json:"state"`
	Overlays []domain.Overlay    `json:"overlays"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// writePump owns all writes to the connection. It exits when send is closed
// or a write fails.
func (h *Hub) writePump(c *client) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("WebSocket: write to %s failed: %v", c.id, err)
			h.drop(c.conn)
			// drain until drop closes the channel
			for range c.send {
			}
			return
		}
	}
}

// Hub mirrors the session's rendering onto every connected browser and
// feeds browser map events back into the session. It implements ports.View.
type Hub struct {
	Session ports.SessionService

	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]*client
	mu       sync.Mutex
}

// NewHub creates a hub. An empty allowedOrigins list only accepts
// same-origin connections.
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{clients: make(map[*websocket.Conn]*client)}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || origin == allowed {
					return true
				}
			}
			log.Printf("WebSocket: Rejected origin: %s", origin)
			return false
		},
	}
	return h
}

// HandleWebSocket upgrades the connection, sends a state sync and reads
// map events until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, sendBuffer)}
	go h.writePump(c)

	h.mu.Lock()
	h.clients[conn] = c
	n := len(h.clients)
	h.mu.Unlock()
	telemetry.ViewClients.Set(float64(n))
	log.Printf("WebSocket connected: client=%s (total: %d)", c.id, n)

	h.sendSync(r.Context(), c)

	go func() {
		defer h.drop(conn)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			h.handleInbound(context.Background(), c, data)
		}
	}()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	c, ok := h.clients[conn]
	delete(h.clients, conn)
	n := len(h.clients)
	if ok {
		close(c.send)
	}
	h.mu.Unlock()
	conn.Close()
	if ok {
		telemetry.ViewClients.Set(float64(n))
		log.Printf("WebSocket disconnected: client=%s (remaining: %d)", c.id, n)
	}
}

func (h *Hub) sendSync(ctx context.Context, c *client) {
	msg := StateSync{ClientID: c.id}
	if h.Session != nil {
		st, err := h.Session.State(ctx)
		if err != nil {
			log.Println("Error getting state:", err)
			return
		}
		overlays, err := h.Session.Overlays(ctx)
		if err != nil {
			log.Println("Error getting overlays:", err)
			return
		}
		msg.State = st
		msg.Overlays = overlays
	}

	data, err := json.Marshal(outMessage{Type: TypeStateSync, Payload: msg})
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.conn]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("WebSocket: state sync to %s dropped, client lagging", c.id)
	}
}

type pointPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type markerPayload struct {
	ID string `json:"id"`
}

func (h *Hub) handleInbound(ctx context.Context, c *client, data []byte) {
	if h.Session == nil {
		return
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("WebSocket: bad message from %s: %v", c.id, err)
		return
	}

	var err error
	switch msg.Type {
	case TypeMapClick, TypeMapPointer:
		var p pointPayload
		if err = json.Unmarshal(msg.Payload, &p); err != nil {
			break
		}
		at := domain.Coordinate{Lat: p.Lat, Lon: p.Lon}
		if msg.Type == TypeMapClick {
			err = h.Session.ClickMap(ctx, at)
		} else {
			err = h.Session.PointerMoved(ctx, at)
		}
	case TypeMarkerClick:
		var p markerPayload
		if err = json.Unmarshal(msg.Payload, &p); err != nil {
			break
		}
		err = h.Session.ToggleCircle(ctx, p.ID)
	default:
		log.Printf("WebSocket: unknown message type %q from %s", msg.Type, c.id)
		return
	}
	if err != nil && !domain.IsUserError(err) {
		log.Printf("WebSocket: %s from %s failed: %v", msg.Type, c.id, err)
	}
}

func (h *Hub) broadcast(msgType string, payload any) {
	data, err := json.Marshal(outMessage{Type: msgType, Payload: payload})
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	// Writes happen on each client's pump; a client too slow to keep up is
	// dropped instead of stalling the caller.
	h.mu.Lock()
	var slow []*websocket.Conn
	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range slow {
		log.Printf("WebSocket: dropping lagging client")
		h.drop(conn)
	}
}

func (h *Hub) AddOverlay(o domain.Overlay) { h.broadcast(TypeOverlayAdd, o) }

func (h *Hub) RemoveOverlay(id string) {
	h.broadcast(TypeOverlayRemove, markerPayload{ID: id})
}

func (h *Hub) SetView(v domain.MapView) { h.broadcast(TypeMapView, v) }

func (h *Hub) ShowProgress() { h.broadcast(TypeProgressShow, nil) }

func (h *Hub) SetProgress(percent int) {
	h.broadcast(TypeProgressSet, map[string]int{"percent": percent})
}

func (h *Hub) HideProgress() { h.broadcast(TypeProgressHide, nil) }

func (h *Hub) RenderSummary(rows []domain.SummaryRow) { h.broadcast(TypeSummary, rows) }

func (h *Hub) Notify(n domain.Notice) { h.broadcast(TypeNotice, n) }

func (h *Hub) SetReadout(text string) {
	h.broadcast(TypeReadout, map[string]string{"text": text})
}
