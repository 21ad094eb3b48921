package booking

import "math"

// Rate maps a booking amount to the platform commission fraction.
// The interpolated band is closed at both ends, so Rate(1000) is 0.13.
func Rate(amount float64) float64 {
	switch {
	case math.IsNaN(amount), amount < 100:
		return 0
	case amount < 200:
		return 0.05
	case amount < 500:
		return 0.08
	case amount > 1000:
		return 0.15
	default:
		r := 0.10 + (amount-500)/500*0.03
		return math.Round(r*10000) / 10000
	}
}

// CommissionAmount is the platform cut in currency units, rounded to paise.
func CommissionAmount(amount float64) float64 {
	return math.Round(amount*Rate(amount)*100) / 100
}
