package utils

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds an amount to 2 decimal places, half-up on the cent boundary.
// It matches the browser's Math.round(x * 100) / 100 so client and server agree.
func Round2(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// Round1 rounds a value to 1 decimal place, half-up.
// Used for display quantities such as miles.
func Round1(value float64) float64 {
	return math.Floor(value*10+0.5) / 10
}

// FormatGBP formats an amount in pounds as a string like "£1,234.50".
// Uses comma as thousands separator and always shows two decimals.
func FormatGBP(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	pence := int64(math.Floor(amount*100 + 0.5))
	whole := strconv.FormatInt(pence/100, 10)
	frac := pence % 100

	var b strings.Builder
	// Pre-allocate: digits + separators + £ + decimals
	b.Grow(len(whole) + len(whole)/3 + 6)
	if neg {
		b.WriteString("-£")
	} else {
		b.WriteString("£")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}

	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))

	return b.String()
}
