package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iconstore-backend/assets"
	"iconstore-backend/config"
	"iconstore-backend/dtos"
	"iconstore-backend/models"
	"iconstore-backend/storage"
	"iconstore-backend/utils"
)

// OfferHandler serves one price-bearing collection. Special offers and
// laptop offers share every rule except the table they live in and the
// lifecycle policy they are configured with, so both are instances of this
// handler rather than duplicated code.
type OfferHandler struct {
	DB      *gorm.DB
	Assets  *assets.Guard
	Storage storage.Client
	Table   string
	Kind    string // human label for errors and logs, e.g. "special offer"
	Policy  config.OfferPolicy
}

func (h *OfferHandler) scope() *gorm.DB {
	return h.DB.Table(h.Table)
}

func (h *OfferHandler) computePercent(priceCents, discountedCents int) int {
	if h.Policy.Rounding == config.RoundingNearest {
		return utils.ComputeDiscountPercent(priceCents, discountedCents)
	}
	return utils.ComputeDiscountPercentFloor(priceCents, discountedCents)
}

func (h *OfferHandler) notFoundMsg() string {
	if h.Kind == "" {
		return "Not found"
	}
	return strings.ToUpper(h.Kind[:1]) + h.Kind[1:] + " not found"
}

func (h *OfferHandler) exclude(id uuid.UUID) assets.Exclude {
	if h.Policy.Section == storage.SectionSpecial {
		return assets.Exclude{SpecialID: id}
	}
	return assets.Exclude{LaptopID: id}
}

// GetOffers lists the collection for the admin panel: status?, q? matches
// the product name, activeNow? filters on the validity window.
func (h *OfferHandler) GetOffers(c *gin.Context) {
	limit, offset := parsePagination(c)

	query := h.scope()
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	now := time.Now()
	switch c.Query("activeNow") {
	case "true":
		query = query.Where(validityWindow, now, now)
	case "false":
		query = query.Where("NOT ("+validityWindow+")", now, now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to list "+h.Kind+"s")
		return
	}

	var items []models.Offer
	if err := query.Order("sort_order ASC, id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to list "+h.Kind+"s")
		return
	}
	if items == nil {
		items = []models.Offer{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	id := c.Param("id")
	var offer models.Offer
	if err := h.scope().Where("id = ?", id).First(&offer).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, h.notFoundMsg())
		return
	}
	c.JSON(http.StatusOK, offer)
}

// CreateOffer validates price invariants and derives the canonical discount
// percent. A client-supplied percent is only sanity-checked against the
// derived value; the stored value is always the server's.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var dto dtos.OfferCreate
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	discounted := *dto.DiscountedCents
	if discounted > dto.PriceCents {
		respondValidation(c, "discountedCents must be <= priceCents", nil)
		return
	}
	computed := h.computePercent(dto.PriceCents, discounted)
	if dto.DiscountPercent != nil && !utils.PercentWithinTolerance(*dto.DiscountPercent, computed, h.Policy.PercentTolerance) {
		respondValidation(c, "discountPercent inconsistent with price/discount", nil)
		return
	}

	validFrom, validTo, ok := parseValidity(c, dto.ValidFrom, dto.ValidTo)
	if !ok {
		return
	}

	offer := models.Offer{
		ID:              uuid.New(),
		ProductName:     dto.ProductName,
		ImageURL:        dto.ImageURL,
		PriceCents:      dto.PriceCents,
		DiscountedCents: discounted,
		DiscountPercent: computed,
		Status:          models.StatusActive,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
	}
	if dto.Status != "" {
		offer.Status = dto.Status
	}
	if dto.SortOrder != nil {
		offer.SortOrder = *dto.SortOrder
	}

	if err := h.scope().Create(&offer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to create "+h.Kind)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// UpdateOffer merges provided fields, re-validates the price invariant on
// the merged values and recomputes the discount percent. Replacing the
// image URL triggers a best-effort reclamation of the previous object after
// the DB write.
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	id := c.Param("id")
	var offer models.Offer
	if err := h.scope().Where("id = ?", id).First(&offer).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, h.notFoundMsg())
		return
	}

	var dto dtos.OfferUpdate
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}
	if dto.ImageURL != nil && *dto.ImageURL == "" {
		respondValidation(c, "imageUrl cannot be empty", nil)
		return
	}

	oldImageURL := offer.ImageURL

	if dto.ProductName != nil {
		offer.ProductName = *dto.ProductName
	}
	if dto.ImageURL != nil {
		offer.ImageURL = *dto.ImageURL
	}
	if dto.PriceCents != nil {
		offer.PriceCents = *dto.PriceCents
	}
	if dto.DiscountedCents != nil {
		offer.DiscountedCents = *dto.DiscountedCents
	}
	if dto.Status != nil {
		offer.Status = *dto.Status
	}
	if dto.SortOrder != nil {
		offer.SortOrder = *dto.SortOrder
	}
	if dto.ValidFrom != nil {
		t, err := dtos.ParseTimestamp(*dto.ValidFrom)
		if err != nil {
			respondValidation(c, err.Error(), nil)
			return
		}
		offer.ValidFrom = t
	}
	if dto.ValidTo != nil {
		t, err := dtos.ParseTimestamp(*dto.ValidTo)
		if err != nil {
			respondValidation(c, err.Error(), nil)
			return
		}
		offer.ValidTo = t
	}

	if offer.DiscountedCents > offer.PriceCents {
		respondValidation(c, "discountedCents must be <= priceCents", nil)
		return
	}
	computed := h.computePercent(offer.PriceCents, offer.DiscountedCents)
	if dto.DiscountPercent != nil && !utils.PercentWithinTolerance(*dto.DiscountPercent, computed, h.Policy.PercentTolerance) {
		respondValidation(c, "discountPercent inconsistent with price/discount", nil)
		return
	}
	offer.DiscountPercent = computed

	if err := h.scope().Save(&offer).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to update "+h.Kind)
		return
	}

	if dto.ImageURL != nil && *dto.ImageURL != "" && *dto.ImageURL != oldImageURL {
		result := h.Assets.MaybeDeleteOldAsset(c.Request.Context(), oldImageURL, h.exclude(offer.ID))
		logCleanup(h.Kind, offer.ID, result)
	}

	c.JSON(http.StatusOK, offer)
}

// DeleteOffer applies the collection's configured delete mode: soft flips
// the record to INACTIVE and leaves storage alone; hard removes the row and
// then tries to reclaim the object, reporting the storage outcome as
// advisory flags.
func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	id := c.Param("id")
	var offer models.Offer
	if err := h.scope().Where("id = ?", id).First(&offer).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, h.notFoundMsg())
		return
	}

	if h.Policy.DeleteMode == config.DeleteModeSoft {
		offer.Status = models.StatusInactive
		if err := h.scope().Save(&offer).Error; err != nil {
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to delete "+h.Kind)
			return
		}
		c.JSON(http.StatusOK, offer)
		return
	}

	if err := h.scope().Where("id = ?", id).Delete(&models.Offer{}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to delete "+h.Kind)
		return
	}

	deleted, deleteErr := h.reclaimObject(c, offer)
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"id":            offer.ID,
		"s3Deleted":     deleted,
		"s3DeleteError": deleteErr,
	})
}

func (h *OfferHandler) reclaimObject(c *gin.Context, offer models.Offer) (bool, interface{}) {
	key := assets.ExtractKey(offer.ImageURL, h.Storage.PublicBase())
	if key == "" {
		return false, "unparsable_or_missing_key"
	}

	inUse, err := h.Assets.KeyInUse(key, h.exclude(offer.ID))
	if err != nil {
		log.Printf("%s %s: in-use check failed for %s: %v", h.Kind, offer.ID, key, err)
		return false, err.Error()
	}
	if inUse {
		log.Printf("%s %s: key %s still referenced, skipping delete", h.Kind, offer.ID, key)
		return false, nil
	}

	result := storage.DeleteWithRetry(c.Request.Context(), h.Storage, key, storage.RetryOptions{
		OnAttempt: func(attempt int, err error) {
			if err != nil {
				log.Printf("%s %s: delete attempt %d for %s failed: %v", h.Kind, offer.ID, attempt, key, err)
			}
		},
	})
	if !result.OK {
		return false, result.Err.Error()
	}
	return true, nil
}
