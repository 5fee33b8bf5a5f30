package bingo

const (
	LowestNumber  = 1
	HighestNumber = 99

	// minSpan is how many distinct values a card needs.
	minSpan = Size * Size
)

// Range is the inclusive set of numbers cards and calls are drawn from.
type Range struct {
	MinNumber int `json:"min_number"`
	MaxNumber int `json:"max_number"`
}

// DefaultRange is the widest range allowed.
var DefaultRange = Range{MinNumber: LowestNumber, MaxNumber: HighestNumber}

// NewRange - corrects min and max into the nearest valid range. It never fails.
func NewRange(minNumber, maxNumber int) Range {
	if minNumber < LowestNumber {
		minNumber = LowestNumber
	}

	if maxNumber > HighestNumber {
		maxNumber = HighestNumber
	}

	if minNumber >= maxNumber {
		maxNumber = minNumber + 1
		if maxNumber > HighestNumber {
			maxNumber = HighestNumber
			minNumber = HighestNumber - 1
		}
	}

	if maxNumber-minNumber+1 < minSpan {
		maxNumber = minNumber + minSpan - 1
		if maxNumber > HighestNumber {
			maxNumber = HighestNumber
			minNumber = HighestNumber - minSpan + 1
		}
	}

	return Range{MinNumber: minNumber, MaxNumber: maxNumber}
}

// Span is the count of values in the range.
func (that Range) Span() int {
	return that.MaxNumber - that.MinNumber + 1
}

func (that Range) Contains(n int) bool {
	return n >= that.MinNumber && n <= that.MaxNumber
}

// Valid reports whether the range satisfies every invariant without correction.
func (that Range) Valid() bool {
	return that.MinNumber >= LowestNumber &&
		that.MaxNumber <= HighestNumber &&
		that.MinNumber < that.MaxNumber &&
		that.Span() >= minSpan
}

func (that Range) values() []int {
	values := make([]int, 0, that.Span())
	for n := that.MinNumber; n <= that.MaxNumber; n++ {
		values = append(values, n)
	}

	return values
}
