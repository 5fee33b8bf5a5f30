package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.GameView, error)
	EndSession(ctx context.Context, id string) error
}

type Server struct {
	logger *slog.Logger
	uGame  uGame

	sessionTTL     time.Duration
	allowedOrigins []string
}

func New(logger *slog.Logger, uGame uGame, sessionTTL time.Duration, allowedOrigins []string) *Server {
	return &Server{
		logger:         logger.With("component", "rest"),
		uGame:          uGame,
		sessionTTL:     sessionTTL,
		allowedOrigins: allowedOrigins,
	}
}

// Router - builds the gin engine with every route of the shell.
func (that *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), that.requestLogger())

	if len(that.allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     that.allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/ping", pingHandler)

	api := router.Group("/api")
	api.GET("/session", that.getSession)
	api.DELETE("/session", that.deleteSession)

	return router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
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

func (that *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		that.logger.Debug("request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
