package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSettings is a singleton row: at most one record exists and
// updates always target it.
type SiteSettings struct {
	ID              string `gorm:"primaryKey" json:"id"`
	SiteName        string `gorm:"not null" json:"siteName"`
	SiteDescription string `gorm:"not null" json:"siteDescription"`
	ContactPhone    string `gorm:"not null" json:"contactPhone"`
	ContactEmail    string `gorm:"not null" json:"contactEmail"`
	ContactAddress  string `gorm:"not null" json:"contactAddress"`
	FacebookURL     string `json:"facebookUrl"`
	InstagramURL    string `json:"instagramUrl"`
	TwitterURL      string `json:"twitterUrl"`

	TaxPercentage float64 `json:"taxPercentage"`

	PaymentBank         string `json:"paymentBank"`
	PaymentCI           string `json:"paymentCI"`
	PaymentPhone        string `json:"paymentPhone"`
	PaymentInstructions string `json:"paymentInstructions"`

	EnableCarousel1      bool   `json:"enableCarousel1"`
	CarouselTitle1       string `json:"carouselTitle1"`
	CarouselSubtitle1    string `json:"carouselSubtitle1"`
	CarouselDescription1 string `json:"carouselDescription1"`
	CarouselImage1       string `json:"carouselImage1"`
	EnableCarousel2      bool   `json:"enableCarousel2"`
	CarouselTitle2       string `json:"carouselTitle2"`
	CarouselSubtitle2    string `json:"carouselSubtitle2"`
	CarouselDescription2 string `json:"carouselDescription2"`
	CarouselImage2       string `json:"carouselImage2"`
	EnableCarousel3      bool   `json:"enableCarousel3"`
	CarouselTitle3       string `json:"carouselTitle3"`
	CarouselSubtitle3    string `json:"carouselSubtitle3"`
	CarouselDescription3 string `json:"carouselDescription3"`
	CarouselImage3       string `json:"carouselImage3"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *SiteSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
