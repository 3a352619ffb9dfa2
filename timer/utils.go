package timer

import (
	"fmt"
)

// FormatSeconds renders a countdown value as "4s". Negative values, which can
// appear for one tick after the cycle was shortened, are shown as 0.
func FormatSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%ds", sec)
}
