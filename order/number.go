package order

import (
	"fmt"
	"time"
)

// NumberPrefix is the literal that starts every order number.
const NumberPrefix = "PED"

// BuildNumber formats a human-readable order number from a year, month,
// and monthly sequence value: prefix + two-digit year + two-digit month +
// five-digit zero-padded sequence. BuildNumber(2026, time.February, 7)
// returns "PED260200007".
func BuildNumber(year int, month time.Month, seq int64) string {
	return fmt.Sprintf("%s%02d%02d%05d", NumberPrefix, year%100, int(month), seq)
}
