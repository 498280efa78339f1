package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/stampdeck/stampdeck-backend/internal/errors"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
	ws "github.com/stampdeck/stampdeck-backend/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"https://stampdeck.io":     true,
			"https://app.stampdeck.io": true,
			"http://localhost:5173":    true, // dev
			"http://localhost:3000":    true, // dev
		}
		return allowedOrigins[origin]
	},
}

// EventsController upgrades authenticated clients onto the storage change
// feed so dashboards refresh live instead of polling.
type EventsController struct {
	hub *ws.Hub
}

func NewEventsController(hub *ws.Hub) *EventsController {
	return &EventsController{hub: hub}
}

// Stream handles WebSocket connections.
// GET /api/v1/events/ws
// The token arrives as a query parameter; it is never logged.
func (ctrl *EventsController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
	})
}
