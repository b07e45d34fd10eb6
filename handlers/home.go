package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"iconstore-backend/models"
)

type HomeHandler struct {
	DB *gorm.DB
}

const (
	homeBannerCap = 5
	homeOfferCap  = 10
)

func (h *HomeHandler) liveScope(table string, now time.Time) *gorm.DB {
	return h.DB.Table(table).
		Where("status = ?", models.StatusActive).
		Where(validityWindow, now, now).
		Order("sort_order ASC, created_at DESC")
}

// GetHome returns the capped content set the storefront landing page
// renders. Only ACTIVE records inside their validity window are visible.
func (h *HomeHandler) GetHome(c *gin.Context) {
	now := time.Now()

	var banners []models.HeroBanner
	if err := h.liveScope(models.TableHeroBanners, now).Limit(homeBannerCap).Find(&banners).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to load home content")
		return
	}
	var specials []models.Offer
	if err := h.liveScope(models.TableSpecialOffers, now).Limit(homeOfferCap).Find(&specials).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to load home content")
		return
	}
	var laptops []models.Offer
	if err := h.liveScope(models.TableLaptopOffers, now).Limit(homeOfferCap).Find(&laptops).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to load home content")
		return
	}

	if banners == nil {
		banners = []models.HeroBanner{}
	}
	if specials == nil {
		specials = []models.Offer{}
	}
	if laptops == nil {
		laptops = []models.Offer{}
	}

	c.JSON(http.StatusOK, gin.H{
		"heroBanners":   banners,
		"specialOffers": specials,
		"laptopOffers":  laptops,
	})
}

// GetCMS is the uncapped variant used by site generators that want the full
// live content set in one call.
func (h *HomeHandler) GetCMS(c *gin.Context) {
	now := time.Now()

	var banners []models.HeroBanner
	if err := h.liveScope(models.TableHeroBanners, now).Find(&banners).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to load content")
		return
	}
	var specials []models.Offer
	if err := h.liveScope(models.TableSpecialOffers, now).Find(&specials).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to load content")
		return
	}
	var laptops []models.Offer
	if err := h.liveScope(models.TableLaptopOffers, now).Find(&laptops).Error; err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to load content")
		return
	}

	if banners == nil {
		banners = []models.HeroBanner{}
	}
	if specials == nil {
		specials = []models.Offer{}
	}
	if laptops == nil {
		laptops = []models.Offer{}
	}

	c.JSON(http.StatusOK, gin.H{
		"banners": banners,
		"offers":  specials,
		"laptops": laptops,
	})
}
