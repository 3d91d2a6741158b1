package hub

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via the bearer token, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(h *Hub) *Handler {
	return &Handler{hub: h}
}

// ServeWS handles GET /ws. The request reaches here already
// authenticated by the middleware.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for user %s: %v", userID, err)
		return
	}

	newClient(h.hub, conn, userID).run()
}
