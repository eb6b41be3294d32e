package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero", in: 0, want: 0},
		{name: "already rounded", in: 32, want: 32},
		{name: "half cent rounds up", in: 1.125, want: 1.13},
		{name: "below half rounds down", in: 4.444, want: 4.44},
		{name: "mile charge", in: 12.3 * 1.5, want: 18.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}

func TestRound1(t *testing.T) {
	assert.InDelta(t, 12.3, Round1(12.34), 1e-9)
	assert.InDelta(t, 12.4, Round1(12.36), 1e-9)
	assert.InDelta(t, 5.0, Round1(5), 1e-9)
}

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "£0.00"},
		{in: 160, want: "£160.00"},
		{in: 192.5, want: "£192.50"},
		{in: 1234.05, want: "£1,234.05"},
		{in: 1234567.891, want: "£1,234,567.89"},
		{in: -40, want: "-£40.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatGBP(tt.in))
		})
	}
}
