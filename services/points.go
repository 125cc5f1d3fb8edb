// services/points.go
package services

import "strings"

// Base points awarded per sale type. Unknown types fall back to the
// default so a new sale category never zeroes out a rep's score.
var saleTypeBasePoints = map[string]int{
	"new_business": 50,
	"upsell":       30,
	"referral":     25,
	"renewal":      20,
}

const defaultBasePoints = 10

// CalculatePoints scores a sale from its type and amount: the type's
// base points plus one point per 100 of amount, floored at zero.
func CalculatePoints(saleType string, amount float64) int {
	base, ok := saleTypeBasePoints[strings.ToLower(saleType)]
	if !ok {
		base = defaultBasePoints
	}

	points := base + int(amount/100)
	if points < 0 {
		points = 0
	}
	return points
}
