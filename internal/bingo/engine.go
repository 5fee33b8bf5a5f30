package bingo

import (
	"math/rand/v2"
	"slices"
)

// Engine holds the state of one single-player bingo game. It is not safe for
// concurrent use; callers serialize operations.
type Engine struct {
	rnd *rand.Rand

	numbers Range

	card   Card
	called []int
	drawn  [HighestNumber + 1]bool
	marked [Size][Size]bool
	lines  []Line

	state   State
	outcome Outcome
}

type Option func(*Engine)

// WithRand sets the randomness source for card shuffles and calls.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) {
		e.rnd = rnd
	}
}

// WithRange sets the initial range, corrected the same way Configure does.
func WithRange(minNumber, maxNumber int) Option {
	return func(e *Engine) {
		e.numbers = NewRange(minNumber, maxNumber)
	}
}

// New - creates an engine in the configuring state with a preview card.
func New(opts ...Option) *Engine {
	engine := &Engine{
		numbers: DefaultRange,
		state:   StateConfiguring,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rnd == nil {
		engine.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // game randomness
	}

	engine.dealCard()

	return engine
}

// Configure - corrects and stores a new range. The next call draws from it.
// While no game is running the card is regenerated from it; a running game
// keeps its card.
func (that *Engine) Configure(minNumber, maxNumber int) Range {
	that.numbers = NewRange(minNumber, maxNumber)

	if !that.Active() {
		that.dealCard()
	}

	return that.numbers
}

// GenerateCard - deals a fresh card and clears marks and lines. The card of a
// running game is immutable, so during play the current card is returned.
func (that *Engine) GenerateCard() Card {
	if !that.Active() {
		that.dealCard()
	}

	return that.card
}

// StartGame - begins a new game, resetting any game in progress.
func (that *Engine) StartGame() {
	that.state = StateActive
	that.outcome = OutcomeNone

	that.called = nil
	that.drawn = [HighestNumber + 1]bool{}

	that.dealCard()
}

// CallNumber - draws one not yet called value from the current range.
// An empty pool ends the game as deck exhausted.
func (that *Engine) CallNumber() Result {
	if !that.Active() {
		return that.noop()
	}

	pool := that.pool()
	if len(pool) == 0 {
		that.finish(OutcomeDeckExhausted)
		return that.result(true, 0, nil)
	}

	number := pool[that.rnd.IntN(len(pool))]
	that.called = append(that.called, number)
	that.drawn[number] = true

	return that.result(true, number, that.EvaluateBingoLines())
}

// MarkCell - marks a cell permanently. Marking does not check the cell's
// number against the called numbers.
func (that *Engine) MarkCell(row, col int) Result {
	cell := Cell{Row: row, Col: col}
	if !that.Active() || !cell.valid() || that.marked[row][col] {
		return that.noop()
	}

	that.marked[row][col] = true

	return that.result(true, 0, that.EvaluateBingoLines())
}

// EvaluateBingoLines - recomputes completed lines from the marks and returns
// those completed since the last evaluation. Reaching WinningLines ends the game.
func (that *Engine) EvaluateBingoLines() []Line {
	current := findLines(&that.marked)
	added := newLines(that.lines, current)
	that.lines = current

	if that.Active() && len(that.lines) >= WinningLines {
		that.finish(OutcomeWon)
	}

	return added
}

func (that *Engine) Card() Card {
	return that.card
}

func (that *Engine) Range() Range {
	return that.numbers
}

// CalledNumbers returns the call history, oldest first.
func (that *Engine) CalledNumbers() []int {
	return slices.Clone(that.called)
}

// LastCalled returns the most recent call and false if nothing was called yet.
func (that *Engine) LastCalled() (int, bool) {
	if len(that.called) == 0 {
		return 0, false
	}

	return that.called[len(that.called)-1], true
}

// Remaining is the count of values in the current range not called yet.
func (that *Engine) Remaining() int {
	remaining := 0
	for n := that.numbers.MinNumber; n <= that.numbers.MaxNumber; n++ {
		if !that.drawn[n] {
			remaining++
		}
	}

	return remaining
}

func (that *Engine) IsMarked(row, col int) bool {
	cell := Cell{Row: row, Col: col}
	return cell.valid() && that.marked[row][col]
}

func (that *Engine) MarkedCells() []Cell {
	var cells []Cell
	for row := range Size {
		for col := range Size {
			if that.marked[row][col] {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Engine) Lines() []Line {
	return slices.Clone(that.lines)
}

func (that *Engine) LineCount() int {
	return len(that.lines)
}

// InLine reports whether the cell is part of any completed line.
func (that *Engine) InLine(row, col int) bool {
	for _, line := range that.lines {
		if line.Contains(row, col) {
			return true
		}
	}

	return false
}

func (that *Engine) Active() bool {
	return that.state == StateActive
}

func (that *Engine) State() State {
	return that.state
}

func (that *Engine) Outcome() Outcome {
	return that.outcome
}

// dealCard - shuffles the whole range and lays the first Size*Size values out row by row.
func (that *Engine) dealCard() {
	values := that.numbers.values()
	that.rnd.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	for i := range Size * Size {
		that.card[i/Size][i%Size] = values[i]
	}

	that.marked = [Size][Size]bool{}
	that.lines = nil
}

func (that *Engine) pool() []int {
	pool := make([]int, 0, that.numbers.Span())
	for n := that.numbers.MinNumber; n <= that.numbers.MaxNumber; n++ {
		if !that.drawn[n] {
			pool = append(pool, n)
		}
	}

	return pool
}

func (that *Engine) finish(outcome Outcome) {
	that.state = StateTerminal
	that.outcome = outcome
}

func (that *Engine) noop() Result {
	return that.result(false, 0, nil)
}

func (that *Engine) result(applied bool, number int, added []Line) Result {
	return Result{
		Applied:   applied,
		Number:    number,
		NewLines:  added,
		LineCount: len(that.lines),
		Remaining: that.Remaining(),
		Outcome:   that.outcome,
	}
}

// validCard reports whether the card holds Size*Size distinct values of r.
func (that *Engine) validCard(r Range) bool {
	var seen [HighestNumber + 1]bool

	for row := range Size {
		for col := range Size {
			n := that.card[row][col]
			if !r.Contains(n) || !DefaultRange.Contains(n) || seen[n] {
				return false
			}
			seen[n] = true
		}
	}

	return true
}
