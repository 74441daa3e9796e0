package rules

import (
	"math"
	"strings"

	"github.com/jonathan/proposal-assistant/internal/types"
)

// CalculateDeadline returns the suggested delivery time in whole days.
// The client's deadline replaces the base when present and non-zero; the
// factors are then applied in a fixed order and the product is rounded up.
// The result is at least one day.
func (e *Engine) CalculateDeadline(clientDeadline *float64, complexity types.Complexity, stackMentioned string, adjustment float64) int {
	base := float64(fallbackBaseDays)
	if days, ok := e.tables.BaseDays[complexity]; ok {
		base = float64(days)
	}
	if clientDeadline != nil && *clientDeadline != 0 {
		base = *clientDeadline
	}

	complexityFactor, ok := e.tables.ComplexityDeadlineFactors[complexity]
	if !ok {
		complexityFactor = 1.0
	}

	userFactor := 1 + adjustment/100

	return WholeDays(base * e.tables.BaselineDeadlineFactor * e.stackFactor(stackMentioned) * complexityFactor * userFactor)
}

// MaxFigure caps every day count and price so it fits an int on any platform.
const MaxFigure = math.MaxInt32

// WholeDays rounds up to whole days within [1, MaxFigure].
func WholeDays(days float64) int {
	days = math.Ceil(days)
	switch {
	case math.IsNaN(days) || days < 1:
		return 1
	case days > MaxFigure:
		return MaxFigure
	}
	return int(days)
}

// WholeAmount rounds to the nearest unit within [0, MaxFigure].
func WholeAmount(value float64) int {
	value = math.Round(value)
	switch {
	case math.IsNaN(value) || value < 0:
		return 0
	case value > MaxFigure:
		return MaxFigure
	}
	return int(value)
}

func (e *Engine) stackFactor(stackMentioned string) float64 {
	stackLower := strings.ToLower(stackMentioned)
	for _, f := range e.tables.StackDeadlineFactors {
		if strings.Contains(stackLower, strings.ToLower(f.Key)) {
			return f.Factor
		}
	}
	return e.tables.DefaultStackFactor
}

// CalculateValue returns the suggested price, or nil when the client gave
// no budget. The discount off the budget never exceeds the complexity's
// maximum, and risky projects get none.
func (e *Engine) CalculateValue(clientBudget *float64, complexity types.Complexity, adjustment float64) *int {
	if clientBudget == nil || *clientBudget == 0 {
		return nil
	}

	maxDiscount, ok := e.tables.MaxDiscounts[complexity]
	if !ok {
		maxDiscount = fallbackMaxDiscount
	}
	discount := math.Min(e.tables.BaselineDiscount, maxDiscount)

	value := *clientBudget * (1 - discount)
	if adjustment != 0 {
		value *= 1 + adjustment/100
	}

	rounded := WholeAmount(value)
	return &rounded
}
