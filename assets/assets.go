// Package assets decides whether a stored object may be reclaimed once the
// record pointing at it is updated or removed. Cleanup here is best-effort:
// results are reported, never propagated as failures of the caller.
package assets

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"iconstore-backend/models"
	"iconstore-backend/storage"
)

// Cleanup skip/failure reasons.
const (
	ReasonInvalidDomain = "invalid_domain"
	ReasonInUse         = "in_use"
	ReasonError         = "error"
)

// ExtractKey strips the configured public base from a URL, returning the
// object key, or "" when the URL is empty or lives outside the base.
func ExtractKey(publicURL, publicBase string) string {
	base := strings.TrimRight(publicBase, "/")
	url := strings.TrimSpace(publicURL)
	if base == "" || url == "" {
		return ""
	}
	prefix := base + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return url[len(prefix):]
}

// Exclude identifies the record being mutated, so its own reference does not
// count as "in use".
type Exclude struct {
	HeroID    uuid.UUID
	SpecialID uuid.UUID
	LaptopID  uuid.UUID
}

// CleanupResult reports the outcome of an asset reconciliation pass.
type CleanupResult struct {
	Deleted bool
	Key     string
	Reason  string
	Err     error
}

// Guard couples the database (for reference checks) with the object store.
type Guard struct {
	DB     *gorm.DB
	Client storage.Client
}

func NewGuard(db *gorm.DB, client storage.Client) *Guard {
	return &Guard{DB: db, Client: client}
}

// KeyInUse reports whether any other record in any asset-bearing collection
// still references the object. Soft-deleted (INACTIVE) records count: their
// URL must keep resolving.
func (g *Guard) KeyInUse(key string, exclude Exclude) (bool, error) {
	if key == "" {
		return false, nil
	}
	url := strings.TrimRight(g.Client.PublicBase(), "/") + "/" + key

	collections := []struct {
		table   string
		exclude uuid.UUID
	}{
		{models.TableHeroBanners, exclude.HeroID},
		{models.TableSpecialOffers, exclude.SpecialID},
		{models.TableLaptopOffers, exclude.LaptopID},
	}
	for _, c := range collections {
		q := g.DB.Table(c.table).Where("image_url = ?", url)
		if c.exclude != uuid.Nil {
			q = q.Where("id <> ?", c.exclude)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// MaybeDeleteOldAsset resolves the old URL to a key, checks that nothing
// else references it, and deletes the object. It never returns an error:
// any failure becomes a CleanupResult the caller may log or surface as an
// advisory flag.
func (g *Guard) MaybeDeleteOldAsset(ctx context.Context, oldURL string, exclude Exclude) CleanupResult {
	key := ExtractKey(oldURL, g.Client.PublicBase())
	if key == "" {
		return CleanupResult{Reason: ReasonInvalidDomain}
	}

	inUse, err := g.KeyInUse(key, exclude)
	if err != nil {
		return CleanupResult{Key: key, Reason: ReasonError, Err: err}
	}
	if inUse {
		return CleanupResult{Key: key, Reason: ReasonInUse}
	}

	if err := g.Client.DeleteObject(ctx, key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return CleanupResult{Deleted: true, Key: key}
		}
		return CleanupResult{Key: key, Reason: ReasonError, Err: err}
	}
	return CleanupResult{Deleted: true, Key: key}
}
