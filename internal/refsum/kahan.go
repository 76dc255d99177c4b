package refsum

import "math"

// kahanSumInc is the Neumaier-improved compensated summation step,
// grounded on grafana-mimir's floats.KahanSumInc: it swaps which term
// feeds the compensation based on relative magnitude, which plain Kahan
// summation gets wrong when the running sum is smaller than the next term.
func kahanSumInc(inc, sum, c float64) (newSum, newC float64) {
	t := sum + inc
	switch {
	case math.IsInf(t, 0):
		c = 0
	case math.Abs(sum) >= math.Abs(inc):
		c += (sum - t) + inc
	default:
		c += (inc - t) + sum
	}
	return t, c
}

// Kahan sums x with Neumaier compensation. Far more accurate than Naive,
// but still not exact: it can still be fooled by pathological orderings,
// which is exactly the property xsum is built not to have.
func Kahan(x []float64) float64 {
	var sum, c float64
	for _, v := range x {
		sum, c = kahanSumInc(v, sum, c)
	}
	return sum + c
}
