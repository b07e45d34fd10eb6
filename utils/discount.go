package utils

import "math"

// ComputeDiscountPercent derives the percent saved from price and discounted
// amounts in minor currency units, rounding to the nearest integer and
// clamping into [0,100]. A non-positive price always yields 0.
func ComputeDiscountPercent(priceCents, discountedCents int) int {
	if priceCents <= 0 {
		return 0
	}
	pct := int(math.Round(float64(priceCents-discountedCents) / float64(priceCents) * 100))
	return clampPercent(pct)
}

// ComputeDiscountPercentFloor is the truncating variant used by the offer
// routes: the displayed percent never overstates the saving.
func ComputeDiscountPercentFloor(priceCents, discountedCents int) int {
	if priceCents <= 0 {
		return 0
	}
	pct := int(math.Floor(float64(priceCents-discountedCents) / float64(priceCents) * 100))
	return clampPercent(pct)
}

// PercentWithinTolerance reports whether a client-supplied percent is close
// enough to the server-derived one. The canonical value is always the
// computed one; the client's number is only ever sanity-checked.
func PercentWithinTolerance(provided, computed, tolerance int) bool {
	diff := provided - computed
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

func clampPercent(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
