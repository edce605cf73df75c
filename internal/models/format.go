package models

import "strconv"

// FormatNumber prints a float with the shortest exact representation,
// so 1.0 renders as "1" and 2.5 as "2.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
