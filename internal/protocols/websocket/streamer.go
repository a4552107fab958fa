// Package websocket streams storage change events to connected clients so
// the UI can react to favorites and leaderboard writes without polling.
package websocket

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"reelhub/internal/storage"
	"reelhub/pkg/logger"
)

const (
	writeWait  = 10 * time.Second    // time allowed to write a message
	pongWait   = 60 * time.Second    // time allowed to read the next pong
	pingPeriod = (pongWait * 9) / 10 // send pings to client
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	CheckOrigin:       checkOrigin,
	EnableCompression: true,
}

// Update is the wire frame sent for each storage change.
type Update struct {
	Type       string          `json:"type"` // "set" or "delete"
	Collection string          `json:"collection"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Streamer fans storage subscription events out to WebSocket clients.
type Streamer struct {
	store storage.Store
}

// NewStreamer creates a streamer over the given store.
func NewStreamer(store storage.Store) *Streamer {
	return &Streamer{store: store}
}

// Serve upgrades the connection and streams change events for the given
// collections until the client disconnects.
func (s *Streamer) Serve(c *gin.Context, collections []string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// gorilla/websocket writes its own HTTP response when the upgrade
		// fails, so just return.
		logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}

	// Fan all subscribed collections into a single send channel.
	send := make(chan storage.Event, sendBuffer)
	done := make(chan struct{})
	cancels := make([]func(), 0, len(collections))
	for _, collection := range collections {
		events, cancel := s.store.Subscribe(collection)
		cancels = append(cancels, cancel)
		logger.WebSocket("subscribe", collection, 1)

		go func() {
			for ev := range events {
				select {
				case send <- ev:
				case <-done:
					return
				}
			}
		}()
	}

	cleanup := func() {
		close(done)
		for _, cancel := range cancels {
			cancel()
		}
		conn.Close()
	}

	go s.readPump(conn, cleanup)
	s.writePump(conn, send, done)
}

// readPump discards inbound frames; the stream is one-way. It exists to
// service pongs and detect disconnects.
func (s *Streamer) readPump(conn *websocket.Conn, cleanup func()) {
	defer cleanup()

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("WebSocket read error: %v", err)
			}
			return
		}
	}
}

// writePump forwards change events and keeps the connection alive with pings.
func (s *Streamer) writePump(conn *websocket.Conn, send <-chan storage.Event, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev := <-send:
			update := Update{
				Type:       string(ev.Type),
				Collection: ev.Collection,
				Key:        ev.Key,
				Data:       json.RawMessage(ev.Value),
				Timestamp:  time.Now(),
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(update); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// checkOrigin allows non-browser clients (no Origin header) and local
// development origins; anything else is rejected outside debug mode.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if u, err := url.Parse(origin); err == nil {
		host := strings.ToLower(u.Hostname())
		if host == "localhost" || host == "127.0.0.1" {
			return true
		}
	}

	return gin.Mode() == gin.DebugMode
}
