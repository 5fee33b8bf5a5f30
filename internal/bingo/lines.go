package bingo

type winLine struct {
	line  Line
	cells [Size]Cell
}

// WinLines lists every line of the card in evaluation order: rows, columns,
// main diagonal, anti-diagonal.
var WinLines = buildWinLines()

func buildWinLines() []winLine {
	lines := make([]winLine, 0, 2*Size+2)

	for row := range Size {
		wl := winLine{line: Line{Kind: LineRow, Index: row}}
		for col := range Size {
			wl.cells[col] = Cell{Row: row, Col: col}
		}
		lines = append(lines, wl)
	}

	for col := range Size {
		wl := winLine{line: Line{Kind: LineColumn, Index: col}}
		for row := range Size {
			wl.cells[row] = Cell{Row: row, Col: col}
		}
		lines = append(lines, wl)
	}

	main := winLine{line: Line{Kind: LineDiagonal, Index: MainDiagonal}}
	anti := winLine{line: Line{Kind: LineDiagonal, Index: AntiDiagonal}}
	for i := range Size {
		main.cells[i] = Cell{Row: i, Col: i}
		anti.cells[i] = Cell{Row: i, Col: Size - 1 - i}
	}

	return append(lines, main, anti)
}

// findLines - returns every complete line for the given marks.
func findLines(marked *[Size][Size]bool) []Line {
	var lines []Line

	for _, wl := range WinLines {
		complete := true
		for _, cell := range wl.cells {
			if !marked[cell.Row][cell.Col] {
				complete = false
				break
			}
		}

		if complete {
			lines = append(lines, wl.line)
		}
	}

	return lines
}

// newLines - the lines in current that are absent from previous.
func newLines(previous, current []Line) []Line {
	seen := make(map[Line]struct{}, len(previous))
	for _, line := range previous {
		seen[line] = struct{}{}
	}

	var added []Line
	for _, line := range current {
		if _, ok := seen[line]; !ok {
			added = append(added, line)
		}
	}

	return added
}
