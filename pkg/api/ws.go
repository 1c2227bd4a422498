// Package api pkg/api/ws.go pushes live updates to the dashboard so it
// does not have to poll over HTTP itself.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/readykit/pulse/pkg/models"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The HTTP admin gate already ran; dashboards connect cross-origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsMessage is the envelope for every pushed update.
type wsMessage struct {
	Type string      `json:"type"` // "health" or "jobs"
	Data interface{} `json:"data"`
}

func (s *APIServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing websocket: %v", err)
		}
	}()

	healthCh, unsubHealth := s.monitor.Subscribe()
	defer unsubHealth()

	var (
		jobsCh     <-chan *models.JobsPage
		unsubJobs  func()
		pingTicker = time.NewTicker(wsPingInterval)
	)

	defer pingTicker.Stop()

	if s.watcher != nil {
		jobsCh, unsubJobs = s.watcher.Subscribe()
		defer unsubJobs()
	}

	// Prime the connection with the current snapshot.
	if snapshot := s.monitor.Latest(); snapshot != nil {
		if err := writeWS(conn, wsMessage{Type: "health", Data: snapshot}); err != nil {
			return
		}
	}

	// Drain client frames so control messages are processed; the dashboard
	// never sends data frames we care about.
	clientGone := make(chan struct{})

	go func() {
		defer close(clientGone)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-clientGone:
			return
		case <-r.Context().Done():
			return
		case snapshot := <-healthCh:
			if err := writeWS(conn, wsMessage{Type: "health", Data: snapshot}); err != nil {
				return
			}
		case page := <-jobsCh:
			if err := writeWS(conn, wsMessage{Type: "jobs", Data: page}); err != nil {
				return
			}
		case <-pingTicker.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func writeWS(conn *websocket.Conn, msg wsMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling websocket message: %v", err)
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, data)
}
