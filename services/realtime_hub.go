package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// PlanEvent is pushed to every socket watching a plan: totals
// recomputed, save started/succeeded/failed.
type PlanEvent struct {
	PlanID string `json:"plan_id"`
	Event  string `json:"event"`
}

type WSClient struct {
	PlanID string
	Conn   *websocket.Conn
}

// PlanHub fans plan events out to connected practitioner sessions.
type PlanHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewPlanHub() *PlanHub {
	return &PlanHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *PlanHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.PlanID] == nil {
		h.clients[c.PlanID] = make(map[*WSClient]struct{})
	}
	h.clients[c.PlanID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *PlanHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.PlanID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.PlanID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *PlanHub) Broadcast(planID string, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[planID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
