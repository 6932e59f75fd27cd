package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"plotgrid.dev/internal/protocol"
)

// Server accepts chat sessions and pushes plot messages to online
// players. It doubles as the online-presence source: a player is online
// while a session for their id is attached.
type Server struct {
	log *log.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]chan []byte
}

func NewServer(logger *log.Logger) *Server {
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		sessions: map[string]chan []byte{},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		playerID, out := s.handshake(conn)
		if playerID == "" {
			return
		}
		defer s.detach(playerID, out)

		done := make(chan struct{})

		// Writer goroutine.
		go func() {
			defer close(done)
			for b := range out {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// Reader loop; clients only send pings/keepalives after HELLO.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		s.detach(playerID, out)
		<-done
	}
}

func (s *Server) handshake(conn *websocket.Conn) (playerID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}
	playerID = strings.TrimSpace(hello.PlayerID)
	if playerID == "" {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "missing player_id"), time.Now().Add(time.Second))
		return "", nil
	}

	out = make(chan []byte, 16)
	s.attach(playerID, out)

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		PlayerID:        playerID,
	}
	if err := writeJSON(conn, welcome); err != nil {
		s.detach(playerID, out)
		return "", nil
	}
	return playerID, out
}

func (s *Server) attach(playerID string, out chan []byte) {
	s.mu.Lock()
	if old, ok := s.sessions[playerID]; ok {
		// A reconnect replaces the previous session.
		close(old)
	}
	s.sessions[playerID] = out
	s.mu.Unlock()
}

func (s *Server) detach(playerID string, out chan []byte) {
	s.mu.Lock()
	if cur, ok := s.sessions[playerID]; ok && cur == out {
		delete(s.sessions, playerID)
		close(cur)
	}
	s.mu.Unlock()
}

// Online reports whether the player has an attached session.
func (s *Server) Online(playerID string) bool {
	s.mu.Lock()
	_, ok := s.sessions[playerID]
	s.mu.Unlock()
	return ok
}

// Deliver sends finished chat text to the player's session. Text with
// embedded newlines arrives as one CHAT message with one entry per
// line. Offline players and full queues drop the message; chat is not
// replayed.
func (s *Server) Deliver(playerID, text string) {
	if text == "" {
		return
	}
	msg := protocol.ChatMsg{
		Type:            protocol.TypeChat,
		ProtocolVersion: protocol.Version,
		PlayerID:        playerID,
		Lines:           strings.Split(text, "\n"),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// The send stays under the lock so a concurrent detach cannot close
	// the channel mid-send.
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.sessions[playerID]
	if !ok {
		return
	}
	select {
	case out <- b:
	default:
		if s.log != nil {
			s.log.Printf("drop chat for %s: session queue full", playerID)
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
