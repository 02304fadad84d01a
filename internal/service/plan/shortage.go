package plan

import "time"

// DetectShortage walks the daily demand series accumulating a running
// total. The first day the remaining quantity goes non-positive is the
// shortage date and is never overwritten by later days. The walk always
// finishes, so the returned quantity is the end-of-horizon remainder, not
// the remainder on the shortage day itself.
func DetectShortage(available float64, dates []time.Time, daily []float64) (*time.Time, float64) {
	var cum float64
	var shortage *time.Time

	for i, q := range daily {
		cum += q
		if shortage == nil && available-cum <= 0 {
			d := dates[i]
			shortage = &d
		}
	}

	return shortage, available - cum
}
