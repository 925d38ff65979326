package handlers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"inventario-backend/dtos"
	"inventario-backend/progress"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// recordingObserver collects every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []dtos.ProgressEvent
}

func (o *recordingObserver) Send(event dtos.ProgressEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

func (o *recordingObserver) Events() []dtos.ProgressEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]dtos.ProgressEvent, len(o.events))
	copy(out, o.events)
	return out
}

func setupProgressServer(hub *progress.Hub) *httptest.Server {
	r := gin.New()
	progressHandler := &ProgressHandler{Hub: hub}
	r.GET("/ws/productos/progreso", progressHandler.Progreso)
	return httptest.NewServer(r)
}

func dialProgress(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/productos/progreso"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	return conn
}

func waitForObservers(hub *progress.Hub, n int) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return hub.Count() == n
}

func TestProgresoDeliversEvents(t *testing.T) {
	hub := progress.NewHub()
	server := setupProgressServer(hub)
	defer server.Close()

	conn := dialProgress(t, server)
	defer conn.Close()

	if !waitForObservers(hub, 1) {
		t.Fatal("observer never registered")
	}

	sent := []dtos.ProgressEvent{
		{Percent: 50, Processed: 1, Total: 2, Succeeded: 1},
		{Percent: 100, Processed: 2, Total: 2, Succeeded: 2, Completed: true},
	}
	for _, event := range sent {
		hub.Broadcast(event)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i, want := range sent {
		var got dtos.ProgressEvent
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("reading event %d: %v", i, err)
		}
		if got != want {
			t.Errorf("event %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestProgresoUnregistersOnDisconnect(t *testing.T) {
	hub := progress.NewHub()
	server := setupProgressServer(hub)
	defer server.Close()

	conn := dialProgress(t, server)
	if !waitForObservers(hub, 1) {
		t.Fatal("observer never registered")
	}

	conn.Close()
	if !waitForObservers(hub, 0) {
		t.Error("observer still registered after disconnect")
	}
}

func TestProgresoMultipleClients(t *testing.T) {
	hub := progress.NewHub()
	server := setupProgressServer(hub)
	defer server.Close()

	first := dialProgress(t, server)
	defer first.Close()
	second := dialProgress(t, server)
	defer second.Close()

	if !waitForObservers(hub, 2) {
		t.Fatal("observers never registered")
	}

	event := dtos.ProgressEvent{Percent: 100, Processed: 1, Total: 1, Succeeded: 1, Completed: true}
	hub.Broadcast(event)

	for i, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got dtos.ProgressEvent
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("client %d read: %v", i, err)
		}
		if got != event {
			t.Errorf("client %d: got %+v, want %+v", i, got, event)
		}
	}
}
