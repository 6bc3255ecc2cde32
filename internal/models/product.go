package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProductTypeSimple   = "simple"
	ProductTypeVariable = "variable"
)

// ProductVariant is a purchasable configuration of a product.
type ProductVariant struct {
	SKU        string            `bson:"sku" json:"sku"`
	Name       string            `bson:"name,omitempty" json:"name,omitempty"`
	Price      float64           `bson:"price" json:"price"`
	SalePrice  *float64          `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	Quantity   int64             `bson:"quantity" json:"quantity"`
	SoldCount  int64             `bson:"soldCount" json:"soldCount"`
	Attributes map[string]string `bson:"attributes,omitempty" json:"attributes,omitempty"`
	Images     []string          `bson:"images" json:"images"`
}

type Product struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Slug              string               `bson:"slug" json:"slug"`
	Description       string               `bson:"description,omitempty" json:"description,omitempty"`
	Type              string               `bson:"type" json:"type"`
	Images            []string             `bson:"images" json:"images"`
	Categories        []primitive.ObjectID `bson:"categories" json:"categories"`
	PrimaryCategoryID *primitive.ObjectID  `bson:"primaryCategoryId,omitempty" json:"primaryCategoryId,omitempty"`
	BrandID           *primitive.ObjectID  `bson:"brandId,omitempty" json:"brandId,omitempty"`
	BrandName         string               `bson:"brandName,omitempty" json:"brandName,omitempty"`
	Variants          []ProductVariant     `bson:"variants" json:"variants"`
	ViewCount         int64                `bson:"viewCount" json:"viewCount"`
	TotalSoldCount    int64                `bson:"totalSoldCount" json:"totalSoldCount"`
	AverageRating     float64              `bson:"averageRating" json:"averageRating"`
	ReviewCount       int64                `bson:"reviewCount" json:"reviewCount"`
	Tags              []string             `bson:"tags" json:"tags"`
	Specifications    map[string]string    `bson:"specifications" json:"specifications"`
	IsActive          bool                 `bson:"isActive" json:"isActive"`
	IsFeatured        bool                 `bson:"isFeatured" json:"isFeatured"`
	IsOnSale          bool                 `bson:"isOnSale" json:"isOnSale"`
	IsNewArrival      bool                 `bson:"isNewArrival" json:"isNewArrival"`
	IsBestSeller      bool                 `bson:"isBestSeller" json:"isBestSeller"`
	AvailableFrom     *time.Time           `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	AvailableTo       *time.Time           `bson:"availableTo,omitempty" json:"availableTo,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}
