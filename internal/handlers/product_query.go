package handlers

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductListOptions captures the client listing filters after parsing.
type ProductListOptions struct {
	Search     string
	CategoryID string
	BrandID    string
	MinPrice   *float64
	MaxPrice   *float64
	Tags       []string
	SortBy     string
	SortOrder  string
}

// availabilityClauses restricts a query to products whose optional
// availability window contains now. Missing or null bounds are open ended.
func availabilityClauses(now time.Time) []bson.M {
	return []bson.M{
		{"$or": []bson.M{
			{"availableFrom": bson.M{"$exists": false}},
			{"availableFrom": nil},
			{"availableFrom": bson.M{"$lte": now}},
		}},
		{"$or": []bson.M{
			{"availableTo": bson.M{"$exists": false}},
			{"availableTo": nil},
			{"availableTo": bson.M{"$gte": now}},
		}},
	}
}

// availableActiveFilter is the base predicate every storefront query starts
// from: active products inside their availability window.
func availableActiveFilter(now time.Time) bson.M {
	return bson.M{
		"isActive": true,
		"$and":     availabilityClauses(now),
	}
}

// buildProductListFilter assembles the composite storefront listing query.
// The price range only applies when both bounds are supplied; search is a
// case-insensitive substring match across name, description, brand name and
// tags, ANDed with the availability constraint.
func buildProductListFilter(opts ProductListOptions, now time.Time) (bson.M, error) {
	filter := availableActiveFilter(now)

	if opts.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(opts.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid categoryId: %s", opts.CategoryID)
		}
		filter["categories"] = categoryID
	}

	if opts.BrandID != "" {
		brandID, err := primitive.ObjectIDFromHex(opts.BrandID)
		if err != nil {
			return nil, fmt.Errorf("invalid brandId: %s", opts.BrandID)
		}
		filter["brandId"] = brandID
	}

	if opts.MinPrice != nil && opts.MaxPrice != nil {
		filter["variants.price"] = bson.M{
			"$gte": *opts.MinPrice,
			"$lte": *opts.MaxPrice,
		}
	}

	if len(opts.Tags) > 0 {
		filter["tags"] = bson.M{"$in": opts.Tags}
	}

	if search := strings.TrimSpace(opts.Search); search != "" {
		searchOr := bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"brandName": bson.M{"$regex": search, "$options": "i"}},
			{"tags": bson.M{"$regex": search, "$options": "i"}},
		}}
		filter["$and"] = append(filter["$and"].([]bson.M), searchOr)
	}

	return filter, nil
}

func buildProductSort(sortBy, sortOrder string) bson.D {
	field := strings.TrimSpace(sortBy)
	if field == "" {
		field = "createdAt"
	}
	order := -1
	if strings.EqualFold(sortOrder, "asc") {
		order = 1
	}
	return bson.D{{Key: field, Value: order}}
}

// salesRankSort orders best sellers and related products.
func salesRankSort() bson.D {
	return bson.D{
		{Key: "totalSoldCount", Value: -1},
		{Key: "viewCount", Value: -1},
	}
}
