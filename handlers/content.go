package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"iconstore-backend/assets"
	"iconstore-backend/dtos"
)

// parseValidity parses optional validFrom/validTo strings and enforces
// validFrom <= validTo. On failure it writes the 400 response and returns
// ok=false.
func parseValidity(c *gin.Context, from, to *string) (*time.Time, *time.Time, bool) {
	var validFrom, validTo *time.Time
	var err error

	if from != nil {
		if validFrom, err = dtos.ParseTimestamp(*from); err != nil {
			respondValidation(c, err.Error(), nil)
			return nil, nil, false
		}
	}
	if to != nil {
		if validTo, err = dtos.ParseTimestamp(*to); err != nil {
			respondValidation(c, err.Error(), nil)
			return nil, nil, false
		}
	}
	if validFrom != nil && validTo != nil && validFrom.After(*validTo) {
		respondValidation(c, "validFrom must be before or equal to validTo", nil)
		return nil, nil, false
	}
	return validFrom, validTo, true
}

// logCleanup records the advisory outcome of an asset reconciliation pass.
// Never escalates: the DB write already succeeded.
func logCleanup(kind string, id uuid.UUID, result assets.CleanupResult) {
	switch {
	case result.Deleted:
		log.Printf("%s %s: reclaimed old asset %s", kind, id, result.Key)
	case result.Reason == assets.ReasonInvalidDomain:
		log.Printf("%s %s: old image outside configured storage base, skipping", kind, id)
	case result.Reason == assets.ReasonInUse:
		log.Printf("%s %s: old asset %s still referenced, skipping", kind, id, result.Key)
	default:
		log.Printf("%s %s: failed to reclaim old asset %s: %v", kind, id, result.Key, result.Err)
	}
}

// validityWindow is the SQL predicate for "currently valid": each bound is
// unbounded when absent.
const validityWindow = "(valid_from IS NULL OR valid_from <= ?) AND (valid_to IS NULL OR valid_to >= ?)"
