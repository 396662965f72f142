package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	maxReadBytes = 4096
)

// Server upgrades HTTP requests and pumps hub messages to the connection.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a websocket endpoint. checkOrigin may be nil to accept
// any origin.
func NewServer(hub *Hub, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Server {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
		now:    time.Now,
	}
}

// ServeHTTP upgrades the connection and registers a client. An optional
// initial message (the current plan) is sent before any broadcast.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Serve(w, r, nil)
}

// Serve is ServeHTTP with an initial message.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, initial []byte) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient()
	s.hub.Register(client)

	replies := make(chan []byte, 4)
	if initial != nil {
		replies <- initial
	}

	go s.writePump(conn, client, replies)
	go s.readPump(conn, client, replies)
}

// writePump is the only goroutine writing to conn.
func (s *Server) writePump(conn *websocket.Conn, client *Client, replies <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case msg := <-replies:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump consumes client messages until the connection drops, answering
// application-level pings.
func (s *Server) readPump(conn *websocket.Conn, client *Client, replies chan<- []byte) {
	defer func() {
		s.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(maxReadBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read error", "client_id", client.ID, "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != TypePing {
			s.logger.Debug("ignoring websocket message", "client_id", client.ID)
			continue
		}
		select {
		case replies <- Pong(s.now()):
		default:
		}
	}
}
