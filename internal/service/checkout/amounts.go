package checkout

import "math"

// amountTolerance is how far two monetary amounts may drift before they are
// treated as unequal. Amounts travel as JSON numbers, so exact float
// comparison would reject legitimate payloads.
const amountTolerance = 0.01

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) <= amountTolerance
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
