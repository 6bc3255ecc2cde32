package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

/*
GET /products
- composite filter: search, category, brand, price range, tags
- always restricted to active products inside their availability window
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		opts := ProductListOptions{
			Search:     c.Query("search"),
			CategoryID: strings.TrimSpace(c.Query("categoryId")),
			BrandID:    strings.TrimSpace(c.Query("brandId")),
			Tags:       c.QueryArray("tags"),
			SortBy:     c.Query("sortBy"),
			SortOrder:  c.Query("sortOrder"),
		}

		if raw := strings.TrimSpace(c.Query("minPrice")); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid minPrice")
				return
			}
			opts.MinPrice = &value
		}
		if raw := strings.TrimSpace(c.Query("maxPrice")); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid maxPrice")
				return
			}
			opts.MaxPrice = &value
		}

		filter, err := buildProductListFilter(opts, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		findOptions := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(buildProductSort(opts.SortBy, opts.SortOrder))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Product, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d of %d products", route, len(items), total)
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"meta":  buildPageMeta(total, page, limit),
		})
	}
}

func findProductsWithFixedFilter(c *gin.Context, db *mongo.Database, route string, filter bson.M, sort bson.D, limit int64) {
	findOptions := options.Find().
		SetLimit(limit).
		SetSort(sort)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "decode error")
		return
	}

	c.JSON(http.StatusOK, products)
}

/*
GET /products/featured
*/
func GetFeaturedProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimitParam(c.Query("limit"), 10)
		filter := availableActiveFilter(time.Now())
		filter["isFeatured"] = true

		findProductsWithFixedFilter(c, db, "GET /products/featured", filter,
			bson.D{{Key: "createdAt", Value: -1}}, limit)
	}
}

/*
GET /products/best-sellers
- flagged best sellers plus anything that actually sold
*/
func GetBestSellerProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimitParam(c.Query("limit"), 10)
		now := time.Now()

		filter := bson.M{
			"isActive": true,
			"$or": []bson.M{
				{"isBestSeller": true},
				{"totalSoldCount": bson.M{"$gt": 0}},
			},
			"$and": availabilityClauses(now),
		}

		findProductsWithFixedFilter(c, db, "GET /products/best-sellers", filter,
			salesRankSort(), limit)
	}
}

/*
GET /products/new-arrivals
*/
func GetNewArrivalProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimitParam(c.Query("limit"), 10)
		filter := availableActiveFilter(time.Now())
		filter["isNewArrival"] = true

		findProductsWithFixedFilter(c, db, "GET /products/new-arrivals", filter,
			bson.D{{Key: "createdAt", Value: -1}}, limit)
	}
}

/*
GET /products/on-sale
*/
func GetOnSaleProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimitParam(c.Query("limit"), 10)
		filter := availableActiveFilter(time.Now())
		filter["isOnSale"] = true

		findProductsWithFixedFilter(c, db, "GET /products/on-sale", filter,
			bson.D{{Key: "createdAt", Value: -1}}, limit)
	}
}

/*
GET /products/:idOrSlug
- the path segment is tried as an ObjectID first, then as a slug
- increments viewCount as a side effect
*/
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:idOrSlug"

		idOrSlug := strings.TrimSpace(c.Param("idOrSlug"))
		filter := availableActiveFilter(time.Now())
		if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
			filter["_id"] = id
		} else {
			filter["slug"] = idOrSlug
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, filter).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if _, err := db.Collection("products").UpdateByID(ctx, product.ID,
			bson.M{"$inc": bson.M{"viewCount": 1}}); err != nil {
			log.Printf("[%s] view count increment failed: %v", route, err)
		} else {
			product.ViewCount++
		}

		c.JSON(http.StatusOK, product)
	}
}

/*
GET /products/:idOrSlug/related
- shares a category, brand or tag with the base product
*/
func GetRelatedProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:idOrSlug/related"

		id, err := primitive.ObjectIDFromHex(c.Param("idOrSlug"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		limit := parseLimitParam(c.Query("limit"), 4)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var base models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&base)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		related := []bson.M{
			{"categories": bson.M{"$in": base.Categories}},
			{"tags": bson.M{"$in": base.Tags}},
		}
		if base.BrandID != nil {
			related = append(related, bson.M{"brandId": *base.BrandID})
		}

		filter := bson.M{
			"_id":      bson.M{"$ne": base.ID},
			"isActive": true,
			"$or":      related,
			"$and":     availabilityClauses(time.Now()),
		}

		findProductsWithFixedFilter(c, db, route, filter, salesRankSort(), limit)
	}
}

type ProductStatsRequest struct {
	ViewCountIncrement      int64    `json:"viewCountIncrement"`
	TotalSoldCountIncrement int64    `json:"totalSoldCountIncrement"`
	ReviewCountIncrement    int64    `json:"reviewCountIncrement"`
	AverageRating           *float64 `json:"averageRating" binding:"omitempty,min=0,max=5"`
}

/*
POST /products/:id/stats
- partial counter increments plus an optional absolute averageRating
*/
func UpdateProductStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProductStatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := buildStatsUpdate(req)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if len(update) == 0 {
			var product models.Product
			err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			c.JSON(http.StatusOK, product)
			return
		}

		var updated models.Product
		err = db.Collection("products").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				update,
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func buildStatsUpdate(req ProductStatsRequest) bson.M {
	inc := bson.M{}
	if req.ViewCountIncrement != 0 {
		inc["viewCount"] = req.ViewCountIncrement
	}
	if req.TotalSoldCountIncrement != 0 {
		inc["totalSoldCount"] = req.TotalSoldCountIncrement
	}
	if req.ReviewCountIncrement != 0 {
		inc["reviewCount"] = req.ReviewCountIncrement
	}

	update := bson.M{}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if req.AverageRating != nil {
		update["$set"] = bson.M{"averageRating": *req.AverageRating}
	}
	return update
}
