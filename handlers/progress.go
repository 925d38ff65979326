package handlers

import (
	"net/http"
	"sync"

	"inventario-backend/dtos"
	"inventario-backend/progress"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin filtering happens in the CORS layer; the websocket endpoint
	// accepts whoever reached it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsObserver adapts a websocket connection to the hub's Observer
// interface. Writes are serialized because broadcasts for concurrent
// imports can arrive from different goroutines.
type wsObserver struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (o *wsObserver) Send(event dtos.ProgressEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(event)
}

type ProgressHandler struct {
	Hub *progress.Hub
}

// Progreso upgrades the connection and keeps the observer registered
// until the client goes away. Clients only send keep-alive messages;
// closing the socket stops delivery to this observer but never stops an
// in-flight import.
func (h *ProgressHandler) Progreso(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	id := h.Hub.Register(&wsObserver{conn: conn})
	defer func() {
		h.Hub.Unregister(id)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
