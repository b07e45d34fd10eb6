package config

import (
	"os"
	"strings"
)

// Delete modes for promotional content records.
const (
	DeleteModeHard = "hard" // remove the DB row, then reclaim the storage object
	DeleteModeSoft = "soft" // set status INACTIVE, never touch storage
)

// Rounding modes for discount percent derivation.
const (
	RoundingFloor   = "floor"
	RoundingNearest = "nearest"
)

// OfferPolicy is the lifecycle policy applied to one offer collection.
// Each collection gets exactly one policy, resolved once at startup.
type OfferPolicy struct {
	Section          string // object-store key prefix: "special" or "laptop"
	DeleteMode       string
	Rounding         string
	PercentTolerance int // max deviation a client-supplied discountPercent may have
}

func deleteMode(envKey, fallback string) string {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(envKey)))
	if v == DeleteModeHard || v == DeleteModeSoft {
		return v
	}
	return fallback
}

func rounding(envKey string) string {
	if strings.TrimSpace(strings.ToLower(os.Getenv(envKey))) == RoundingNearest {
		return RoundingNearest
	}
	return RoundingFloor
}

// SpecialOfferPolicy defaults to soft delete: special offers historically
// keep their storage objects. SPECIAL_OFFERS_DELETE_MODE=hard opts in to
// reclaiming storage like the other collections.
func SpecialOfferPolicy() OfferPolicy {
	return OfferPolicy{
		Section:          "special",
		DeleteMode:       deleteMode("SPECIAL_OFFERS_DELETE_MODE", DeleteModeSoft),
		Rounding:         rounding("SPECIAL_OFFERS_ROUNDING"),
		PercentTolerance: 1,
	}
}

func LaptopOfferPolicy() OfferPolicy {
	return OfferPolicy{
		Section:          "laptop",
		DeleteMode:       deleteMode("LAPTOP_OFFERS_DELETE_MODE", DeleteModeHard),
		Rounding:         rounding("LAPTOP_OFFERS_ROUNDING"),
		PercentTolerance: 1,
	}
}
