package model

import (
	"fmt"
	"time"
)

// AdType selects the structural template for an ad: hook/CTA layout,
// length ceiling and output format expectations.
type AdType string

// Supported ad types.
const (
	AdTypeSocialMedia        AdType = "social_media"
	AdTypeEmail              AdType = "email"
	AdTypeProductDescription AdType = "product_description"
)

// DefaultAdType is substituted at the HTTP boundary when a request
// omits the ad type.
const DefaultAdType = AdTypeSocialMedia

// ParseAdType converts a wire value to an AdType.
func ParseAdType(s string) (AdType, error) {
	switch AdType(s) {
	case AdTypeSocialMedia, AdTypeEmail, AdTypeProductDescription:
		return AdType(s), nil
	}
	return "", fmt.Errorf("invalid ad_type: %q", s)
}

// AdTone selects the stylistic modifier injected into the structural
// template: emoji density, formality, sentence length.
type AdTone string

// Supported ad tones.
const (
	AdToneFriendly       AdTone = "friendly"
	AdToneProfessional   AdTone = "professional"
	AdToneUrgent         AdTone = "urgent"
	AdTonePlayful        AdTone = "playful"
	AdToneLuxurious      AdTone = "luxurious"
	AdToneMinimalist     AdTone = "minimalist"
	AdToneBold           AdTone = "bold"
	AdToneConversational AdTone = "conversational"
)

// DefaultAdTone is substituted at the HTTP boundary when a request
// omits the ad tone.
const DefaultAdTone = AdToneFriendly

// ParseAdTone converts a wire value to an AdTone.
func ParseAdTone(s string) (AdTone, error) {
	switch AdTone(s) {
	case AdToneFriendly, AdToneProfessional, AdToneUrgent, AdTonePlayful,
		AdToneLuxurious, AdToneMinimalist, AdToneBold, AdToneConversational:
		return AdTone(s), nil
	}
	return "", fmt.Errorf("invalid ad_tone: %q", s)
}

// GenerationRequest is the product input for ad generation. Constructed
// per HTTP call, never persisted.
type GenerationRequest struct {
	ProductName     string   `json:"product_name" binding:"required,min=1,max=200"`
	BrandName       string   `json:"brand_name,omitempty" binding:"max=100"`
	Category        []string `json:"category" binding:"required,min=1"`
	Description     string   `json:"description,omitempty" binding:"max=1000"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty" binding:"omitempty,gt=0"`
	ProductURL      string   `json:"product_url,omitempty" binding:"max=1000"`
	ImageURL        string   `json:"image_url,omitempty" binding:"max=1000"`

	AdType AdType `json:"ad_type,omitempty" binding:"max=50"`
	AdTone AdTone `json:"ad_tone,omitempty" binding:"max=50"`
}

// ProductInfo echoes the request's product fields in responses.
type ProductInfo struct {
	ProductName     string   `json:"product_name"`
	BrandName       string   `json:"brand_name,omitempty"`
	Category        []string `json:"category"`
	Description     string   `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	ProductURL      string   `json:"product_url,omitempty"`
}

// AdSettings carries the resolved type and tone of a generation.
type AdSettings struct {
	AdType AdType `json:"ad_type"`
	AdTone AdTone `json:"ad_tone"`
}

// GenerationResponse is the complete non-streaming generation result.
// Created once per successful call; immutable.
type GenerationResponse struct {
	AdContent      string      `json:"ad_content"`
	ProductInfo    ProductInfo `json:"product_info"`
	AdSettings     AdSettings  `json:"ad_settings"`
	GenerationTime float64     `json:"generation_time"` // elapsed seconds
	ModelUsed      string      `json:"model_used"`
	RequestID      string      `json:"request_id"`
	Timestamp      time.Time   `json:"timestamp"`
}

// ProductInfoFromRequest builds the response echo of a request.
func ProductInfoFromRequest(req *GenerationRequest) ProductInfo {
	return ProductInfo{
		ProductName:     req.ProductName,
		BrandName:       req.BrandName,
		Category:        req.Category,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		ProductURL:      req.ProductURL,
	}
}
