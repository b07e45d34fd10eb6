package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer holds the fields shared by the two price-bearing collections.
// Special offers and laptop offers live in separate tables but carry the
// exact same columns, so handlers operate on Offer via an explicit table name.
type Offer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductName     string     `gorm:"not null" json:"productName"`
	ImageURL        string     `gorm:"column:image_url;not null" json:"imageUrl"`
	PriceCents      int        `gorm:"not null" json:"priceCents"`
	DiscountedCents int        `gorm:"not null" json:"discountedCents"`
	DiscountPercent int        `gorm:"not null" json:"discountPercent"`
	Status          string     `gorm:"default:ACTIVE;index" json:"status"`
	SortOrder       int        `gorm:"default:0" json:"sortOrder"`
	ValidFrom       *time.Time `json:"validFrom"`
	ValidTo         *time.Time `json:"validTo"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type SpecialOffer struct {
	Offer `gorm:"embedded"`
}

type LaptopOffer struct {
	Offer `gorm:"embedded"`
}

// Table names used by the shared offer handler.
const (
	TableSpecialOffers = "special_offers"
	TableLaptopOffers  = "laptop_offers"
)
