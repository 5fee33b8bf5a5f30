package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
	"github.com/rocketscienceinc/bingo-backend/transport/session"
)

const (
	shutdownTimeout   = 5 * time.Second
	defaultSessionTTL = 24 * time.Hour
)

type uGame interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.GameView, error)
	Configure(ctx context.Context, id string, minNumber, maxNumber int) (*entity.GameView, error)
	NewCard(ctx context.Context, id string) (*entity.GameView, error)
	StartGame(ctx context.Context, id string) (*entity.GameView, error)
	CallNumber(ctx context.Context, id string) (*entity.GameView, *entity.MoveResult, error)
	MarkCell(ctx context.Context, id string, row, col int) (*entity.GameView, *entity.MoveResult, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

type Options struct {
	AutoCallInterval time.Duration
	SessionTTL       time.Duration
	AllowedOrigins   []string
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	opts     Options
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}

	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		opts:   opts,

		handlers: make(map[string]handlerFunc),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionSettings] = server.handleSettings
	server.handlers[actionCard] = server.handleCard
	server.handlers[actionStart] = server.handleStart
	server.handlers[actionCall] = server.handleCall
	server.handlers[actionMark] = server.handleMark
	server.handlers[actionAuto] = server.handleAuto

	return server
}

// Handler - returns the /ws handler; connections live until ctx is canceled.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" || len(that.opts.AllowedOrigins) == 0 {
		return true
	}

	return slices.Contains(that.opts.AllowedOrigins, origin)
}

// upgradeToWebSocket - upgrades the connection and serves it until it closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	sessionID := session.FromRequest(req)
	if sessionID == "" {
		sessionID = uuid.NewString()
		log.Info("session cookie not found, new one created", "session", sessionID)
	}

	header := http.Header{}
	header.Add("Set-Cookie", session.Cookie(sessionID, that.opts.SessionTTL).String())

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := newClient(that.logger.With("session", sessionID), conn, sessionID, that.opts.AutoCallInterval)
	defer c.close()

	go c.writePump()

	log.Info("WebSocket connection established", "session", sessionID)

	that.handleMessages(connCtx, c)
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, reqBody, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			_ = c.sendMessage("", ResponsePayload{Error: apperror.ErrInvalidPayload.Error()})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			_ = c.sendMessage(message.Action, ResponsePayload{Error: apperror.ErrUnknownAction.Error()})
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
