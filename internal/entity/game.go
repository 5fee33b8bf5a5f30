package entity

import "github.com/rocketscienceinc/bingo-backend/internal/bingo"

// GameView is what a shell needs to render one session's game.
type GameView struct {
	SessionID string `json:"session"`

	MinNumber int `json:"min_number"`
	MaxNumber int `json:"max_number"`

	Card        bingo.Card                   `json:"card"`
	Marked      [bingo.Size][bingo.Size]bool `json:"marked"`
	Highlighted [bingo.Size][bingo.Size]bool `json:"highlighted"`

	CalledNumbers []int `json:"called_numbers"`
	LastCalled    int   `json:"last_called,omitempty"`
	CalledCount   int   `json:"called_count"`
	Remaining     int   `json:"remaining"`

	Lines     []bingo.Line `json:"lines"`
	LineCount int          `json:"line_count"`

	Active  bool          `json:"active"`
	State   bingo.State   `json:"state"`
	Outcome bingo.Outcome `json:"outcome,omitempty"`
}

func NewGameView(sessionID string, engine *bingo.Engine) *GameView {
	numbers := engine.Range()

	view := &GameView{
		SessionID:     sessionID,
		MinNumber:     numbers.MinNumber,
		MaxNumber:     numbers.MaxNumber,
		Card:          engine.Card(),
		CalledNumbers: engine.CalledNumbers(),
		Remaining:     engine.Remaining(),
		Lines:         engine.Lines(),
		LineCount:     engine.LineCount(),
		Active:        engine.Active(),
		State:         engine.State(),
		Outcome:       engine.Outcome(),
	}

	if view.CalledNumbers == nil {
		view.CalledNumbers = []int{}
	}
	if view.Lines == nil {
		view.Lines = []bingo.Line{}
	}

	view.CalledCount = len(view.CalledNumbers)
	if last, ok := engine.LastCalled(); ok {
		view.LastCalled = last
	}

	for row := range bingo.Size {
		for col := range bingo.Size {
			view.Marked[row][col] = engine.IsMarked(row, col)
			view.Highlighted[row][col] = engine.InLine(row, col)
		}
	}

	return view
}

// IsFinished reports whether the game reached its terminal state.
func (that *GameView) IsFinished() bool {
	return that.State == bingo.StateTerminal
}

// MoveResult is the part of an engine result a shell reacts to: what was
// called, which lines were just completed and whether the game ended.
type MoveResult struct {
	Applied  bool          `json:"applied"`
	Number   int           `json:"number,omitempty"`
	NewLines []bingo.Line  `json:"new_lines,omitempty"`
	GameOver bool          `json:"game_over"`
	Outcome  bingo.Outcome `json:"outcome,omitempty"`
}

func NewMoveResult(result bingo.Result) *MoveResult {
	return &MoveResult{
		Applied:  result.Applied,
		Number:   result.Number,
		NewLines: result.NewLines,
		GameOver: result.GameOver(),
		Outcome:  result.Outcome,
	}
}
