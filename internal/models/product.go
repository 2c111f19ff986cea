package models

import (
	"math"
	"time"
)

// Product is one merchandise item built from a single spreadsheet row.
// ProductNumber is the primary key across the whole pipeline.
type Product struct {
	ProductNumber string   `json:"productNumber"`
	BrandName     string   `json:"brandName,omitempty"`
	ProductName   string   `json:"productName"`
	SalePrice     float64  `json:"salePrice"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Material      string   `json:"material,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Category      string   `json:"category,omitempty"`
	Version       int      `json:"version,omitempty"`
}

// HasDiscount reports whether the product should carry a discount badge.
// Equal sale and original prices are not a discount even when both are set.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice > 0 && p.OriginalPrice != p.SalePrice
}

// DiscountRate returns the rounded percentage off, 0 when not discounted.
func (p *Product) DiscountRate() int {
	if !p.HasDiscount() {
		return 0
	}

	return int(math.Round((1 - p.SalePrice/p.OriginalPrice) * 100))
}

// CatalogEntry is the published, storefront-facing projection of a Product.
type CatalogEntry struct {
	ProductNumber string   `json:"productNumber"`
	ProductName   string   `json:"productName"`
	BrandName     string   `json:"brandName"`
	Category      string   `json:"category"`
	SalePrice     float64  `json:"salePrice"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Thumbnail     string   `json:"thumbnail"`
	Description   string   `json:"description,omitempty"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	Material      string   `json:"material"`
	Origin        string   `json:"origin"`
}

// Snapshot is the full published catalog document (products.json).
type Snapshot struct {
	Generated time.Time      `json:"generated"`
	Count     int            `json:"count"`
	Products  []CatalogEntry `json:"products"`
}
