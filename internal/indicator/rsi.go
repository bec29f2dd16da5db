package indicator

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when fewer than period+1 prices are
// available. Callers treat it as "cannot evaluate this cycle", not fatal.
var ErrInsufficientData = errors.New("not enough data to calculate RSI")

// RSI computes the Relative Strength Index over the first `period` price
// changes of a time-ascending close series.
//
// This is the simple-average variant, not Wilder smoothing: only the first
// `period` deltas contribute, regardless of how many prices were supplied.
// Changing this to exponential smoothing would shift every historical
// signal, so the simplification is kept on purpose.
func RSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(prices) < period+1 {
		return 0, fmt.Errorf("%w: have %d prices, need %d", ErrInsufficientData, len(prices), period+1)
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		// No losses in the window means maximal momentum; also avoids
		// dividing by zero.
		return 100.0, nil
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs)), nil
}
