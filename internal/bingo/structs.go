package bingo

import (
	"errors"
	"fmt"
)

// Size is the side length of a card.
const Size = 5

// WinningLines is the number of completed lines that ends a game.
const WinningLines = 5

var ErrUnknownLineKind = errors.New("unknown line kind")

// Card is the player's grid of distinct numbers for one game.
type Card [Size][Size]int

// Cell is a coordinate on the card.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

type LineKind int

const (
	LineRow LineKind = iota
	LineColumn
	LineDiagonal
)

const (
	MainDiagonal = 0
	AntiDiagonal = 1
)

func (that LineKind) String() string {
	switch that {
	case LineRow:
		return "row"
	case LineColumn:
		return "column"
	case LineDiagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("LineKind(%d)", int(that))
	}
}

func (that LineKind) MarshalText() ([]byte, error) {
	switch that {
	case LineRow, LineColumn, LineDiagonal:
		return []byte(that.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownLineKind, int(that))
	}
}

func (that *LineKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "row":
		*that = LineRow
	case "column":
		*that = LineColumn
	case "diagonal":
		*that = LineDiagonal
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLineKind, text)
	}

	return nil
}

// Line is a completed row, column or diagonal. Diagonal index 0 is the main
// diagonal, 1 the anti-diagonal.
type Line struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

// Contains reports whether the cell lies on the line.
func (that Line) Contains(row, col int) bool {
	switch that.Kind {
	case LineRow:
		return that.Index == row
	case LineColumn:
		return that.Index == col
	case LineDiagonal:
		if that.Index == MainDiagonal {
			return row == col
		}
		return row+col == Size-1
	default:
		return false
	}
}

// State is the engine's position in the game lifecycle.
type State string

const (
	StateConfiguring State = "configuring"
	StateActive      State = "active"
	StateTerminal    State = "terminal"
)

// Outcome tells why a game reached the terminal state.
type Outcome string

const (
	OutcomeNone          Outcome = ""
	OutcomeWon           Outcome = "won"
	OutcomeDeckExhausted Outcome = "deck_exhausted"
)

// Result describes what a single engine operation changed.
type Result struct {
	// Applied is false when the operation was a no-op.
	Applied bool `json:"applied"`
	// Number is the drawn value, zero unless a number was called.
	Number    int     `json:"number,omitempty"`
	NewLines  []Line  `json:"new_lines,omitempty"`
	LineCount int     `json:"line_count"`
	Remaining int     `json:"remaining"`
	Outcome   Outcome `json:"outcome,omitempty"`
}

// GameOver reports whether the game is in the terminal state after the operation.
func (that Result) GameOver() bool {
	return that.Outcome != OutcomeNone
}
