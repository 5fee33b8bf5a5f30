package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

// decodePayload - reads the request payload.
func (that *Server) decodePayload(c *client, msg *Message) (*RequestPayload, error) {
	var payloadReq RequestPayload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			_ = c.sendMessage(msg.Action, ResponsePayload{Error: apperror.ErrInvalidPayload.Error()})
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return &payloadReq, nil
}

// handleConnect - loads the connection's game. Only here may the payload name
// another session; every other action works on the connection's session.
func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := that.decodePayload(c, msg)
	if err != nil {
		return err
	}

	if payloadReq.Session != "" && payloadReq.Session != c.session() {
		c.caller.StopAndWait()
		c.setSession(payloadReq.Session)
	}

	view, err := that.uGame.GetOrCreateSession(ctx, c.session())
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, "failed to get session", err)
	}

	return that.sendGame(c, msg.Action, view, nil)
}

func (that *Server) handleSettings(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := that.decodePayload(c, msg)
	if err != nil {
		return err
	}

	minNumber, maxNumber := bingo.LowestNumber, bingo.HighestNumber
	if payloadReq.MinNumber != nil {
		minNumber = *payloadReq.MinNumber
	}
	if payloadReq.MaxNumber != nil {
		maxNumber = *payloadReq.MaxNumber
	}

	view, err := that.uGame.Configure(ctx, c.session(), minNumber, maxNumber)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, "failed to apply settings", err)
	}

	return that.sendGame(c, msg.Action, view, nil)
}

func (that *Server) handleCard(ctx context.Context, c *client, msg *Message) error {
	if _, err := that.decodePayload(c, msg); err != nil {
		return err
	}

	view, err := that.uGame.NewCard(ctx, c.session())
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, "failed to generate card", err)
	}

	return that.sendGame(c, msg.Action, view, nil)
}

func (that *Server) handleStart(ctx context.Context, c *client, msg *Message) error {
	if _, err := that.decodePayload(c, msg); err != nil {
		return err
	}

	c.caller.StopAndWait()

	view, err := that.uGame.StartGame(ctx, c.session())
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, "failed to start game", err)
	}

	return that.sendGame(c, msg.Action, view, nil)
}

func (that *Server) handleCall(ctx context.Context, c *client, msg *Message) error {
	if _, err := that.decodePayload(c, msg); err != nil {
		return err
	}

	view, result, err := that.uGame.CallNumber(ctx, c.session())
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, "failed to call number", err)
	}

	if result.GameOver {
		c.caller.Stop()
	}

	return that.sendGame(c, msg.Action, view, result)
}

func (that *Server) handleMark(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := that.decodePayload(c, msg)
	if err != nil {
		return err
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return that.sendErrorResponse(c, msg.Action, "row and col are required", apperror.ErrInvalidPayload)
	}

	view, result, err := that.uGame.MarkCell(ctx, c.session(), *payloadReq.Row, *payloadReq.Col)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, "failed to mark cell", err)
	}

	if result.GameOver {
		c.caller.Stop()
	}

	return that.sendGame(c, msg.Action, view, result)
}

// handleAuto - switches automatic calling on or off. Without "enabled" it toggles.
func (that *Server) handleAuto(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := that.decodePayload(c, msg)
	if err != nil {
		return err
	}

	enable := !c.caller.Running()
	if payloadReq.Enabled != nil {
		enable = *payloadReq.Enabled
	}

	if !enable {
		c.caller.Stop()
		return that.sendAuto(c, false)
	}

	if err = c.caller.Start(ctx, that.autoTick(c)); err != nil && !errors.Is(err, apperror.ErrAutoCallRunning) {
		return that.sendErrorResponse(c, msg.Action, "failed to start auto call", err)
	}

	return that.sendAuto(c, true)
}

// autoTick - one automatic call, pushed to the client as a game:call message.
func (that *Server) autoTick(c *client) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		view, result, err := that.uGame.CallNumber(ctx, c.session())
		if err != nil {
			_ = that.sendErrorResponse(c, actionCall, "failed to call number", err)
			_ = that.sendAuto(c, false)
			return true
		}

		if err = that.sendGame(c, actionCall, view, result); err != nil {
			c.logger.Error("failed to push call", "error", err)
			return true
		}

		if result.GameOver || !result.Applied {
			_ = that.sendAuto(c, false)
			return true
		}

		return false
	}
}

func (that *Server) sendGame(c *client, action string, view *entity.GameView, result *entity.MoveResult) error {
	c.setSession(view.SessionID)

	payload := ResponsePayload{
		Session: view.SessionID,
		Game:    view,
		Result:  result,
	}

	if err := c.sendMessage(action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendAuto(c *client, running bool) error {
	payload := ResponsePayload{
		Session: c.session(),
		Auto:    &running,
	}

	if err := c.sendMessage(actionAuto, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string, cause error) error {
	if err := c.sendMessage(action, ResponsePayload{Session: c.session(), Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return fmt.Errorf("%s: %w", errorMsg, cause)
}
