package bingo

// Snapshot is a plain copy of engine state, suitable for encoding.
type Snapshot struct {
	Range   Range   `json:"range"`
	Card    Card    `json:"card"`
	Called  []int   `json:"called,omitempty"`
	Marked  []Cell  `json:"marked,omitempty"`
	State   State   `json:"state"`
	Outcome Outcome `json:"outcome,omitempty"`
}

func (that *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		Range:   that.numbers,
		Card:    that.card,
		Called:  that.CalledNumbers(),
		Marked:  that.MarkedCells(),
		State:   that.state,
		Outcome: that.outcome,
	}
}

// Restore - rebuilds an engine from a snapshot. The range is corrected,
// repeated calls and calls outside LowestNumber..HighestNumber are dropped and
// lines are recomputed from the marks. A card that is not Size*Size distinct values of the range is dealt
// again, dropping its marks.
func Restore(snapshot *Snapshot, opts ...Option) *Engine {
	engine := New(opts...)

	engine.numbers = NewRange(snapshot.Range.MinNumber, snapshot.Range.MaxNumber)

	// Calls made before a mid-game Configure may lie outside the current range.
	for _, n := range snapshot.Called {
		if !DefaultRange.Contains(n) || engine.drawn[n] {
			continue
		}
		engine.drawn[n] = true
		engine.called = append(engine.called, n)
	}

	// A game keeps its card across a mid-game Configure, so only a preview
	// card must come from the current range.
	cardRange := engine.numbers
	if snapshot.State == StateActive || snapshot.State == StateTerminal {
		cardRange = DefaultRange
	}

	engine.card = snapshot.Card
	if engine.validCard(cardRange) {
		engine.marked = [Size][Size]bool{}
		for _, cell := range snapshot.Marked {
			if cell.valid() {
				engine.marked[cell.Row][cell.Col] = true
			}
		}
		engine.lines = findLines(&engine.marked)
	} else {
		engine.dealCard()
	}

	switch snapshot.State {
	case StateActive:
		engine.state = StateActive
		if len(engine.lines) >= WinningLines {
			engine.finish(OutcomeWon)
		}
	case StateTerminal:
		engine.finish(restoredOutcome(snapshot.Outcome, engine))
	default:
		engine.state = StateConfiguring
	}

	return engine
}

// restoredOutcome - keeps a known outcome of an ended game, otherwise derives
// it from the lines.
func restoredOutcome(outcome Outcome, engine *Engine) Outcome {
	switch outcome {
	case OutcomeWon, OutcomeDeckExhausted:
		return outcome
	}

	if len(engine.lines) >= WinningLines {
		return OutcomeWon
	}

	return OutcomeDeckExhausted
}
