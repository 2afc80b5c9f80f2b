package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
)

type RealtimeController struct {
	Hub *services.PlanHub
}

func NewRealtimeController(hub *services.PlanHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /plans/:id/events — websocket stream of plan events (totals
// recomputed, save lifecycle terminal states).
func (rc *RealtimeController) PlanEventsWS(c *gin.Context) {
	planID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{PlanID: planID, Conn: conn}
	rc.Hub.Register(cl)

	// ping keeps connections alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.Hub.Unregister(cl)
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Hub.Unregister(cl)
			return
		}
	}
}
