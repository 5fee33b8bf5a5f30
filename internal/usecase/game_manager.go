package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, snapshot *bingo.Snapshot) error
	GetByID(ctx context.Context, id string) (*bingo.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs one bingo engine per browser session. Operations on the
// same session are serialized; the engine itself is never shared between calls.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	defaults    bingo.Range

	locks *sessionLocks
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, defaults bingo.Range) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		defaults:    bingo.NewRange(defaults.MinNumber, defaults.MaxNumber),

		locks: newSessionLocks(),
	}
}

// GetOrCreateSession - returns the session's game, creating a session when id
// is empty or unknown.
func (that *GameManager) GetOrCreateSession(ctx context.Context, id string) (*entity.GameView, error) {
	view, _, err := that.apply(ctx, id, func(*bingo.Engine) bingo.Result {
		return bingo.Result{}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	return view, nil
}

// Configure - applies new range settings to the session.
func (that *GameManager) Configure(ctx context.Context, id string, minNumber, maxNumber int) (*entity.GameView, error) {
	view, _, err := that.apply(ctx, id, func(engine *bingo.Engine) bingo.Result {
		engine.Configure(minNumber, maxNumber)
		return bingo.Result{Applied: true}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure game: %w", err)
	}

	return view, nil
}

// NewCard - deals a new preview card; a running game keeps its card.
func (that *GameManager) NewCard(ctx context.Context, id string) (*entity.GameView, error) {
	view, _, err := that.apply(ctx, id, func(engine *bingo.Engine) bingo.Result {
		engine.GenerateCard()
		return bingo.Result{Applied: !engine.Active()}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate card: %w", err)
	}

	return view, nil
}

func (that *GameManager) StartGame(ctx context.Context, id string) (*entity.GameView, error) {
	view, _, err := that.apply(ctx, id, func(engine *bingo.Engine) bingo.Result {
		engine.StartGame()
		return bingo.Result{Applied: true}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	that.logger.Info("game started", "session", view.SessionID, "min", view.MinNumber, "max", view.MaxNumber)

	return view, nil
}

func (that *GameManager) CallNumber(ctx context.Context, id string) (*entity.GameView, *entity.MoveResult, error) {
	view, result, err := that.apply(ctx, id, func(engine *bingo.Engine) bingo.Result {
		return engine.CallNumber()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call number: %w", err)
	}

	that.logResult("number called", view, result)

	return view, entity.NewMoveResult(result), nil
}

func (that *GameManager) MarkCell(ctx context.Context, id string, row, col int) (*entity.GameView, *entity.MoveResult, error) {
	view, result, err := that.apply(ctx, id, func(engine *bingo.Engine) bingo.Result {
		return engine.MarkCell(row, col)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark cell: %w", err)
	}

	that.logResult("cell marked", view, result)

	return view, entity.NewMoveResult(result), nil
}

// EndSession - drops the session's game. Ending an unknown session is not an error.
func (that *GameManager) EndSession(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

// apply - loads the session engine, runs op on it and stores the result.
func (that *GameManager) apply(
	ctx context.Context,
	id string,
	op func(engine *bingo.Engine) bingo.Result,
) (*entity.GameView, bingo.Result, error) {
	if id == "" {
		id = uuid.NewString()
	}

	unlock := that.locks.lock(id)
	defer unlock()

	engine, err := that.loadEngine(ctx, id)
	if err != nil {
		return nil, bingo.Result{}, err
	}

	result := op(engine)

	if err = that.sessionRepo.CreateOrUpdate(ctx, id, engine.Snapshot()); err != nil {
		return nil, bingo.Result{}, fmt.Errorf("failed to update session: %w", err)
	}

	return entity.NewGameView(id, engine), result, nil
}

func (that *GameManager) loadEngine(ctx context.Context, id string) (*bingo.Engine, error) {
	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.logger.Debug("session not found, new one created", "session", id)

		return bingo.New(bingo.WithRange(that.defaults.MinNumber, that.defaults.MaxNumber)), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return bingo.Restore(snapshot), nil
}

func (that *GameManager) logResult(msg string, view *entity.GameView, result bingo.Result) {
	if !result.Applied {
		return
	}

	log := that.logger.With("session", view.SessionID)

	log.Debug(msg, "number", result.Number, "lines", result.LineCount)

	for _, line := range result.NewLines {
		log.Info("bingo", "kind", line.Kind.String(), "index", line.Index, "lines", result.LineCount)
	}

	if result.GameOver() {
		log.Info("game over", "outcome", result.Outcome, "lines", result.LineCount, "called", view.CalledCount)
	}
}
