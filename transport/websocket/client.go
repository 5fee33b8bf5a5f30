package websocket

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/bingo-backend/internal/autocall"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// client is one browser connection. All writes go through send and are
// performed by writePump only.
type client struct {
	logger *slog.Logger
	conn   *websocket.Conn
	caller *autocall.Caller

	mu        sync.Mutex
	sessionID string
	send      chan []byte
	closed    bool
}

func newClient(logger *slog.Logger, conn *websocket.Conn, sessionID string, interval time.Duration) *client {
	return &client{
		logger:    logger,
		conn:      conn,
		caller:    autocall.New(interval),
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer),
	}
}

func (that *client) session() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.sessionID
}

func (that *client) setSession(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessionID = id
}

// sendMessage - queues a message for writePump.
func (that *client) sendMessage(action string, payload ResponsePayload) error {
	msg, err := encodeMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return websocket.ErrCloseSent
	}

	select {
	case that.send <- msg:
		return nil
	default:
		return fmt.Errorf("send buffer of %d messages is full", sendBuffer)
	}
}

func (that *client) close() {
	that.caller.Stop()

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	that.closed = true
	close(that.send)
}

func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				that.logger.Error("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
