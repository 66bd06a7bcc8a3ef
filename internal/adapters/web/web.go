package web

// Re-export types from subpackages
import (
	websocket "github.com/lcalzada-xor/towermap/internal/adapters/web/websocket"
)

// Hub is re-exported from the websocket subpackage
type Hub = websocket.Hub

// NewHub creates a new Hub
func NewHub(allowedOrigins []string) *Hub {
	return websocket.NewHub(allowedOrigins)
}
