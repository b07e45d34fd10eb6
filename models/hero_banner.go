package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record statuses shared by all promotional content collections.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

const TableHeroBanners = "hero_banners"

type HeroBanner struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	CtaText   string     `gorm:"column:cta_text" json:"ctaText"`
	CtaLink   string     `gorm:"column:cta_link" json:"ctaLink"`
	ImageURL  string     `gorm:"column:image_url;not null" json:"imageUrl"`
	Status    string     `gorm:"default:ACTIVE;index" json:"status"`
	SortOrder int        `gorm:"default:0" json:"sortOrder"`
	ValidFrom *time.Time `json:"validFrom"`
	ValidTo   *time.Time `json:"validTo"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (b *HeroBanner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
