package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestBuildProductListFilterAlwaysRestrictsToActiveAvailable(t *testing.T) {
	filter, err := buildProductListFilter(ProductListOptions{}, testNow())
	if err != nil {
		t.Fatalf("buildProductListFilter returned error: %v", err)
	}
	if filter["isActive"] != true {
		t.Fatal("expected isActive=true in base filter")
	}
	clauses, ok := filter["$and"].([]bson.M)
	if !ok || len(clauses) != 2 {
		t.Fatalf("expected two availability clauses, got %v", filter["$and"])
	}
}

func TestBuildProductListFilterPriceRangeNeedsBothBounds(t *testing.T) {
	min := 10.0
	max := 20.0

	filter, err := buildProductListFilter(ProductListOptions{MinPrice: &min}, testNow())
	if err != nil {
		t.Fatalf("buildProductListFilter returned error: %v", err)
	}
	if _, ok := filter["variants.price"]; ok {
		t.Fatal("expected no price filter when only minPrice is set")
	}

	filter, err = buildProductListFilter(ProductListOptions{MinPrice: &min, MaxPrice: &max}, testNow())
	if err != nil {
		t.Fatalf("buildProductListFilter returned error: %v", err)
	}
	priceRange, ok := filter["variants.price"].(bson.M)
	if !ok {
		t.Fatal("expected price filter when both bounds are set")
	}
	if priceRange["$gte"] != 10.0 || priceRange["$lte"] != 20.0 {
		t.Fatalf("unexpected price range: %v", priceRange)
	}
}

func TestBuildProductListFilterSearchJoinsAvailabilityWithAnd(t *testing.T) {
	filter, err := buildProductListFilter(ProductListOptions{Search: "mouse"}, testNow())
	if err != nil {
		t.Fatalf("buildProductListFilter returned error: %v", err)
	}

	clauses, ok := filter["$and"].([]bson.M)
	if !ok || len(clauses) != 3 {
		t.Fatalf("expected availability plus search clause, got %v", filter["$and"])
	}

	searchOr, ok := clauses[2]["$or"].([]bson.M)
	if !ok || len(searchOr) != 4 {
		t.Fatalf("expected search across four fields, got %v", clauses[2])
	}
}

func TestBuildProductListFilterTags(t *testing.T) {
	filter, err := buildProductListFilter(ProductListOptions{Tags: []string{"sale", "summer"}}, testNow())
	if err != nil {
		t.Fatalf("buildProductListFilter returned error: %v", err)
	}
	tagFilter, ok := filter["tags"].(bson.M)
	if !ok {
		t.Fatal("expected tags filter")
	}
	in, ok := tagFilter["$in"].([]string)
	if !ok || len(in) != 2 {
		t.Fatalf("unexpected tags filter: %v", tagFilter)
	}
}

func TestBuildProductListFilterRejectsBadObjectIDs(t *testing.T) {
	if _, err := buildProductListFilter(ProductListOptions{CategoryID: "not-an-id"}, testNow()); err == nil {
		t.Fatal("expected error for invalid categoryId")
	}
	if _, err := buildProductListFilter(ProductListOptions{BrandID: "not-an-id"}, testNow()); err == nil {
		t.Fatal("expected error for invalid brandId")
	}
}

func TestBuildProductSortDefaultsToRecency(t *testing.T) {
	sort := buildProductSort("", "")
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Fatalf("expected createdAt desc default, got %v", sort)
	}

	sort = buildProductSort("viewCount", "asc")
	if sort[0].Key != "viewCount" || sort[0].Value != 1 {
		t.Fatalf("expected viewCount asc, got %v", sort)
	}
}

func TestBuildStatsUpdateOnlyTouchesGivenCounters(t *testing.T) {
	update := buildStatsUpdate(ProductStatsRequest{ViewCountIncrement: 1})
	inc, ok := update["$inc"].(bson.M)
	if !ok {
		t.Fatal("expected $inc update")
	}
	if inc["viewCount"] != int64(1) {
		t.Fatalf("expected viewCount increment of 1, got %v", inc["viewCount"])
	}
	if _, ok := inc["totalSoldCount"]; ok {
		t.Fatal("expected totalSoldCount to stay untouched")
	}
	if _, ok := update["$set"]; ok {
		t.Fatal("expected no $set without averageRating")
	}
}

func TestBuildStatsUpdateSetsAverageRating(t *testing.T) {
	rating := 4.5
	update := buildStatsUpdate(ProductStatsRequest{AverageRating: &rating})
	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatal("expected $set update")
	}
	if set["averageRating"] != 4.5 {
		t.Fatalf("expected averageRating 4.5, got %v", set["averageRating"])
	}
}

func TestBuildStatsUpdateEmptyRequest(t *testing.T) {
	update := buildStatsUpdate(ProductStatsRequest{})
	if len(update) != 0 {
		t.Fatalf("expected empty update, got %v", update)
	}
}
