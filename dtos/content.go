package dtos

import (
	"fmt"
	"time"
)

type HeroBannerCreate struct {
	Title     string  `json:"title" binding:"required"`
	Subtitle  string  `json:"subtitle"`
	CtaText   string  `json:"ctaText"`
	CtaLink   string  `json:"ctaLink" binding:"omitempty,url"`
	ImageURL  string  `json:"imageUrl" binding:"required,url,startswith=https://"`
	Status    string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,gte=0"`
	ValidFrom *string `json:"validFrom"`
	ValidTo   *string `json:"validTo"`
}

type HeroBannerUpdate struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	CtaText   *string `json:"ctaText"`
	CtaLink   *string `json:"ctaLink" binding:"omitempty,url"`
	ImageURL  *string `json:"imageUrl" binding:"omitempty,url,startswith=https://"`
	Status    *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,gte=0"`
	ValidFrom *string `json:"validFrom"`
	ValidTo   *string `json:"validTo"`
}

// OfferCreate is shared by special offers and laptop offers; amounts are in
// integer minor currency units.
type OfferCreate struct {
	ProductName     string  `json:"productName" binding:"required"`
	ImageURL        string  `json:"imageUrl" binding:"required,url,startswith=https://"`
	PriceCents      int     `json:"priceCents" binding:"required,gt=0"`
	DiscountedCents *int    `json:"discountedCents" binding:"required,gte=0"`
	DiscountPercent *int    `json:"discountPercent" binding:"omitempty,gte=0,lte=100"`
	Status          string  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	SortOrder       *int    `json:"sortOrder" binding:"omitempty,gte=0"`
	ValidFrom       *string `json:"validFrom"`
	ValidTo         *string `json:"validTo"`
}

type OfferUpdate struct {
	ProductName     *string `json:"productName"`
	ImageURL        *string `json:"imageUrl" binding:"omitempty,url,startswith=https://"`
	PriceCents      *int    `json:"priceCents" binding:"omitempty,gt=0"`
	DiscountedCents *int    `json:"discountedCents" binding:"omitempty,gte=0"`
	DiscountPercent *int    `json:"discountPercent" binding:"omitempty,gte=0,lte=100"`
	Status          *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	SortOrder       *int    `json:"sortOrder" binding:"omitempty,gte=0"`
	ValidFrom       *string `json:"validFrom"`
	ValidTo         *string `json:"validTo"`
}

type PresignRequest struct {
	Section     string `json:"section" binding:"required,oneof=hero special laptop"`
	Filename    string `json:"filename" binding:"required,min=1,max=200"`
	ContentType string `json:"contentType" binding:"required"`
}

// ParseTimestamp accepts RFC3339 or bare dates. An empty string clears the
// bound (returns nil).
func ParseTimestamp(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid timestamp %q; expected RFC3339 or YYYY-MM-DD", value)
}
