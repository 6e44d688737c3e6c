package domain

import (
	"regexp"
	"strings"
)

type Category string

const (
	CategoryCarAccessories Category = "car"
	CategoryPowerTools     Category = "tools"
)

// ParseCategory maps both the short identifiers and the storefront URL slugs
// onto the closed category set.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "car", "car-accessories":
		return CategoryCarAccessories, true
	case "tools", "power-tools":
		return CategoryPowerTools, true
	}
	return "", false
}

type Image struct {
	URL string `json:"url"`
}

type Product struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	SKU        string   `json:"sku"`
	Brand      string   `json:"brand"`
	Category   Category `json:"category_id"`
	PriceCents int64    `json:"price_cents"`
	Stock      int      `json:"stock"`
	IsActive   bool     `json:"is_active"`
	Images     []Image  `json:"images,omitempty"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

// PrimaryImage returns the first image URL, or "" when the product carries
// no media.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe slug the catalog assigns at creation time.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
