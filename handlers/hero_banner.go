package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"iconstore-backend/assets"
	"iconstore-backend/dtos"
	"iconstore-backend/models"
	"iconstore-backend/storage"
)

type HeroBannerHandler struct {
	DB      *gorm.DB
	Assets  *assets.Guard
	Storage storage.Client
}

// GetHeroBanners lists banners for the admin panel: optional status and
// title filters, paginated, ordered sortOrder ASC with newest-first ties.
func (h *HeroBannerHandler) GetHeroBanners(c *gin.Context) {
	limit, offset := parsePagination(c)

	query := h.DB.Model(&models.HeroBanner{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to list hero banners")
		return
	}

	var items []models.HeroBanner
	if err := query.Order("sort_order ASC, id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to list hero banners")
		return
	}
	if items == nil {
		items = []models.HeroBanner{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "limit": limit, "offset": offset})
}

func (h *HeroBannerHandler) GetHeroBanner(c *gin.Context) {
	id := c.Param("id")
	var banner models.HeroBanner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "Hero banner not found")
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *HeroBannerHandler) CreateHeroBanner(c *gin.Context) {
	var dto dtos.HeroBannerCreate
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	validFrom, validTo, ok := parseValidity(c, dto.ValidFrom, dto.ValidTo)
	if !ok {
		return
	}

	banner := models.HeroBanner{
		ID:        uuid.New(),
		Title:     dto.Title,
		Subtitle:  dto.Subtitle,
		CtaText:   dto.CtaText,
		CtaLink:   dto.CtaLink,
		ImageURL:  dto.ImageURL,
		Status:    models.StatusActive,
		ValidFrom: validFrom,
		ValidTo:   validTo,
	}
	if dto.Status != "" {
		banner.Status = dto.Status
	}
	if dto.SortOrder != nil {
		banner.SortOrder = *dto.SortOrder
	}

	if err := h.DB.Create(&banner).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to create hero banner")
		return
	}
	c.JSON(http.StatusCreated, banner)
}

// UpdateHeroBanner merges the provided fields into the stored record. When
// the image URL is replaced, the previous object becomes a candidate for
// reclamation - after the DB write, and without affecting the response.
func (h *HeroBannerHandler) UpdateHeroBanner(c *gin.Context) {
	id := c.Param("id")
	var banner models.HeroBanner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "Hero banner not found")
		return
	}

	var dto dtos.HeroBannerUpdate
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}
	if dto.ImageURL != nil && *dto.ImageURL == "" {
		respondValidation(c, "imageUrl cannot be empty", nil)
		return
	}

	oldImageURL := banner.ImageURL

	if dto.Title != nil {
		banner.Title = *dto.Title
	}
	if dto.Subtitle != nil {
		banner.Subtitle = *dto.Subtitle
	}
	if dto.CtaText != nil {
		banner.CtaText = *dto.CtaText
	}
	if dto.CtaLink != nil {
		banner.CtaLink = *dto.CtaLink
	}
	if dto.ImageURL != nil {
		banner.ImageURL = *dto.ImageURL
	}
	if dto.Status != nil {
		banner.Status = *dto.Status
	}
	if dto.SortOrder != nil {
		banner.SortOrder = *dto.SortOrder
	}
	if dto.ValidFrom != nil {
		t, err := dtos.ParseTimestamp(*dto.ValidFrom)
		if err != nil {
			respondValidation(c, err.Error(), nil)
			return
		}
		banner.ValidFrom = t
	}
	if dto.ValidTo != nil {
		t, err := dtos.ParseTimestamp(*dto.ValidTo)
		if err != nil {
			respondValidation(c, err.Error(), nil)
			return
		}
		banner.ValidTo = t
	}

	if err := h.DB.Save(&banner).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to update hero banner")
		return
	}

	if dto.ImageURL != nil && *dto.ImageURL != "" && *dto.ImageURL != oldImageURL {
		result := h.Assets.MaybeDeleteOldAsset(c.Request.Context(), oldImageURL, assets.Exclude{HeroID: banner.ID})
		logCleanup("hero banner", banner.ID, result)
	}

	c.JSON(http.StatusOK, banner)
}

// DeleteHeroBanner hard-deletes the row, then tries to reclaim the storage
// object. The DB delete is authoritative and always happens first; the
// storage outcome is advisory.
func (h *HeroBannerHandler) DeleteHeroBanner(c *gin.Context) {
	id := c.Param("id")
	var banner models.HeroBanner
	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		respondError(c, http.StatusNotFound, CodeNotFound, "Hero banner not found")
		return
	}

	if err := h.DB.Delete(&models.HeroBanner{}, "id = ?", id).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to delete hero banner")
		return
	}

	deleted, deleteErr := h.reclaimObject(c, banner)
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"id":            banner.ID,
		"s3Deleted":     deleted,
		"s3DeleteError": deleteErr,
	})
}

// reclaimObject resolves the banner's key, checks other references, and
// retries the store delete. Returns the advisory flags for the response.
func (h *HeroBannerHandler) reclaimObject(c *gin.Context, banner models.HeroBanner) (bool, interface{}) {
	key := assets.ExtractKey(banner.ImageURL, h.Storage.PublicBase())
	if key == "" {
		return false, "unparsable_or_missing_key"
	}

	inUse, err := h.Assets.KeyInUse(key, assets.Exclude{HeroID: banner.ID})
	if err != nil {
		log.Printf("hero banner %s: in-use check failed for %s: %v", banner.ID, key, err)
		return false, err.Error()
	}
	if inUse {
		log.Printf("hero banner %s: key %s still referenced, skipping delete", banner.ID, key)
		return false, nil
	}

	result := storage.DeleteWithRetry(c.Request.Context(), h.Storage, key, storage.RetryOptions{
		OnAttempt: func(attempt int, err error) {
			if err != nil {
				log.Printf("hero banner %s: delete attempt %d for %s failed: %v", banner.ID, attempt, key, err)
			}
		},
	})
	if !result.OK {
		return false, result.Err.Error()
	}
	return true, nil
}
