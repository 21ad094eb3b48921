package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	tests := []struct {
		amount float64
		want   float64
	}{
		{0, 0},
		{99.99, 0},
		{100, 0.05},
		{199.99, 0.05},
		{200, 0.08},
		{499.99, 0.08},
		{500, 0.10},
		{750, 0.115},
		{1000, 0.13},
		{1000.01, 0.15},
		{25000, 0.15},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Rate(tt.amount), 1e-9, "amount %v", tt.amount)
	}
}

func TestRateMonotonicInInterpolatedBand(t *testing.T) {
	prev := Rate(500)
	for a := 500.0; a <= 1000; a += 0.5 {
		r := Rate(a)
		assert.GreaterOrEqual(t, r, prev, "amount %v", a)
		assert.GreaterOrEqual(t, r, 0.10)
		assert.LessOrEqual(t, r, 0.13)
		prev = r
	}
}

func TestCommissionAmount(t *testing.T) {
	assert.Equal(t, 0.0, CommissionAmount(50))
	assert.Equal(t, 7.5, CommissionAmount(150))
	assert.Equal(t, 86.25, CommissionAmount(750))
	assert.Equal(t, 300.0, CommissionAmount(2000))
}
