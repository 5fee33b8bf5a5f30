package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/bingo-backend/transport/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

// getSession - returns the caller's game, issuing a session cookie on first visit.
func (that *Server) getSession(ctx *gin.Context) {
	log := that.logger.With("method", "getSession")

	view, err := that.uGame.GetOrCreateSession(ctx.Request.Context(), session.FromRequest(ctx.Request))
	if err != nil {
		log.Error("failed to get session", "error", err)
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	session.SetCookie(ctx.Writer, view.SessionID, that.sessionTTL)
	ctx.JSON(http.StatusOK, view)
}

// deleteSession - drops the caller's game and cookie.
func (that *Server) deleteSession(ctx *gin.Context) {
	log := that.logger.With("method", "deleteSession")

	id := session.FromRequest(ctx.Request)
	if id == "" {
		ctx.Status(http.StatusNoContent)
		return
	}

	if err := that.uGame.EndSession(ctx.Request.Context(), id); err != nil {
		log.Error("failed to end session", "error", err)
		ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	session.ClearCookie(ctx.Writer)
	ctx.Status(http.StatusNoContent)
}
