package pricing

import (
	"math"
	"strconv"

	"github.com/coverply/warranty-admin/internal/models"
)

// ToStorage converts a user-facing price into its stored integer form.
// FIXED_AMOUNT is stored in minor currency units, rounded half-up.
// PERCENTAGE is stored as whole percentage points, truncating any fraction:
// fractional percentages are not retained, so the round trip is lossy for
// PERCENTAGE values with a fractional part.
func ToStorage(display float64, pt models.PriceType) int64 {
	if pt == models.PriceTypePercentage {
		return int64(display)
	}
	return int64(math.Floor(display*100 + 0.5))
}

// ToDisplay converts a stored integer back to its user-facing value.
func ToDisplay(stored int64, pt models.PriceType) float64 {
	if pt == models.PriceTypePercentage {
		return float64(stored)
	}
	return float64(stored) / 100
}

// FormatDisplay renders a stored price for the admin table: two decimal
// places for fixed amounts, a bare integer for percentages.
func FormatDisplay(stored int64, pt models.PriceType) string {
	if pt == models.PriceTypePercentage {
		return strconv.FormatInt(stored, 10)
	}
	return strconv.FormatFloat(ToDisplay(stored, pt), 'f', 2, 64)
}
