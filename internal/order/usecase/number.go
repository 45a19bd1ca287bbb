package usecase

import "time"

// orderNumberLayout is YYMMDDHHMMSS.
const orderNumberLayout = "060102150405"

// GenerateOrderNumber concatenates the category prefix with t at second resolution.
func GenerateOrderNumber(prefix string, t time.Time) string {
	return prefix + t.Format(orderNumberLayout)
}
