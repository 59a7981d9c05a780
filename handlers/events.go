package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"reelhouse/services/broadcast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Editor tabs connect from the admin origin; the shared secret on
	// every mutating endpoint is the actual guard, the socket only
	// carries advisory refresh hints.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsHandler upgrades editor sessions onto the broadcast hub.
type EventsHandler struct {
	hub *broadcast.Hub
}

func NewEventsHandler(hub *broadcast.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

func (h *EventsHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] upgrade failed: %v", err)
		return
	}
	broadcast.NewClient(h.hub, conn).Start()
}
