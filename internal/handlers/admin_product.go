package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type ProductCreateRequest struct {
	Name              string            `json:"name" binding:"required"`
	Description       string            `json:"description"`
	Type              string            `json:"type"`
	Images            []string          `json:"images"`
	CategoryIDs       []string          `json:"categories"`
	PrimaryCategoryID string            `json:"primaryCategoryId"`
	BrandID           string            `json:"brandId"`
	BrandName         string            `json:"brandName"`
	Variants          []VariantInput    `json:"variants"`
	Tags              []string          `json:"tags"`
	Specifications    map[string]string `json:"specifications"`
	IsActive          *bool             `json:"isActive"`
	IsFeatured        *bool             `json:"isFeatured"`
	IsOnSale          *bool             `json:"isOnSale"`
	IsNewArrival      *bool             `json:"isNewArrival"`
	IsBestSeller      *bool             `json:"isBestSeller"`
	AvailableFrom     *time.Time        `json:"availableFrom"`
	AvailableTo       *time.Time        `json:"availableTo"`
}

type ProductUpdateRequest struct {
	Name              *string            `json:"name"`
	Description       *string            `json:"description"`
	Type              *string            `json:"type"`
	Images            *[]string          `json:"images"`
	CategoryIDs       *[]string          `json:"categories"`
	PrimaryCategoryID *string            `json:"primaryCategoryId"`
	BrandID           *string            `json:"brandId"`
	BrandName         *string            `json:"brandName"`
	Variants          *[]VariantInput    `json:"variants"`
	Tags              *[]string          `json:"tags"`
	Specifications    *map[string]string `json:"specifications"`
	IsActive          *bool              `json:"isActive"`
	IsFeatured        *bool              `json:"isFeatured"`
	IsOnSale          *bool              `json:"isOnSale"`
	IsNewArrival      *bool              `json:"isNewArrival"`
	IsBestSeller      *bool              `json:"isBestSeller"`
	AvailableFrom     *time.Time         `json:"availableFrom"`
	AvailableTo       *time.Time         `json:"availableTo"`
}

func parseObjectIDs(values []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalObjectID(value string) (*primitive.ObjectID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(trimmed)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

/*
GET /admin/api/products
*/
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination params"})
			return
		}

		filter := bson.M{}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": search, "$options": "i"}},
				{"brandName": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
				{"tags": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		if isActive := strings.TrimSpace(c.Query("isActive")); isActive != "" {
			filter["isActive"] = strings.EqualFold(isActive, "true")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":       products,
			"pagination": buildPageMeta(total, page, limit),
		})
	}
}

/*
POST /admin/api/products
*/
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		productType := strings.TrimSpace(req.Type)
		if productType == "" {
			productType = models.ProductTypeSimple
		}
		if productType != models.ProductTypeSimple && productType != models.ProductTypeVariable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be simple or variable"})
			return
		}

		categories, err := parseObjectIDs(req.CategoryIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		primaryCategoryID, err := parseOptionalObjectID(req.PrimaryCategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid primaryCategoryId"})
			return
		}

		brandID, err := parseOptionalObjectID(req.BrandID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brandId"})
			return
		}

		variantInputs := req.Variants
		if len(variantInputs) == 0 {
			// mirror the schema default of a single empty variant
			variantInputs = []VariantInput{{SKU: "", Price: 0.0, Quantity: 0.0}}
		}
		variants, err := normalizeVariants(variantInputs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		productSlug, err := generateUniqueSlug(ctx, db.Collection("products"), name, primitive.NilObjectID)
		if err != nil {
			log.Println("CreateProduct slug generation error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		boolOr := func(value *bool, fallback bool) bool {
			if value != nil {
				return *value
			}
			return fallback
		}

		now := time.Now()
		product := models.Product{
			Name:              name,
			Slug:              productSlug,
			Description:       strings.TrimSpace(req.Description),
			Type:              productType,
			Images:            req.Images,
			Categories:        categories,
			PrimaryCategoryID: primaryCategoryID,
			BrandID:           brandID,
			BrandName:         strings.TrimSpace(req.BrandName),
			Variants:          variants,
			Tags:              req.Tags,
			Specifications:    req.Specifications,
			IsActive:          boolOr(req.IsActive, true),
			IsFeatured:        boolOr(req.IsFeatured, false),
			IsOnSale:          boolOr(req.IsOnSale, false),
			IsNewArrival:      boolOr(req.IsNewArrival, false),
			IsBestSeller:      boolOr(req.IsBestSeller, false),
			AvailableFrom:     req.AvailableFrom,
			AvailableTo:       req.AvailableTo,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if product.Images == nil {
			product.Images = []string{}
		}
		if product.Tags == nil {
			product.Tags = []string{}
		}
		if product.Specifications == nil {
			product.Specifications = map[string]string{}
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("CreateProduct insert success:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

/*
PUT /admin/api/products/:id
- regenerates the slug whenever the name changes
*/
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		updateSet := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
				return
			}
			productSlug, err := generateUniqueSlug(ctx, db.Collection("products"), name, id)
			if err != nil {
				log.Println("UpdateProduct slug generation error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			updateSet["name"] = name
			updateSet["slug"] = productSlug
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Type != nil {
			productType := strings.TrimSpace(*req.Type)
			if productType != models.ProductTypeSimple && productType != models.ProductTypeVariable {
				c.JSON(http.StatusBadRequest, gin.H{"error": "type must be simple or variable"})
				return
			}
			updateSet["type"] = productType
		}
		if req.Images != nil {
			updateSet["images"] = *req.Images
		}
		if req.CategoryIDs != nil {
			categories, err := parseObjectIDs(*req.CategoryIDs)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
				return
			}
			updateSet["categories"] = categories
		}
		if req.PrimaryCategoryID != nil {
			primaryCategoryID, err := parseOptionalObjectID(*req.PrimaryCategoryID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid primaryCategoryId"})
				return
			}
			updateSet["primaryCategoryId"] = primaryCategoryID
		}
		if req.BrandID != nil {
			brandID, err := parseOptionalObjectID(*req.BrandID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brandId"})
				return
			}
			updateSet["brandId"] = brandID
		}
		if req.BrandName != nil {
			updateSet["brandName"] = strings.TrimSpace(*req.BrandName)
		}
		if req.Variants != nil {
			variants, err := normalizeVariants(*req.Variants)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateSet["variants"] = variants
		}
		if req.Tags != nil {
			updateSet["tags"] = *req.Tags
		}
		if req.Specifications != nil {
			updateSet["specifications"] = *req.Specifications
		}
		if req.IsActive != nil {
			updateSet["isActive"] = *req.IsActive
		}
		if req.IsFeatured != nil {
			updateSet["isFeatured"] = *req.IsFeatured
		}
		if req.IsOnSale != nil {
			updateSet["isOnSale"] = *req.IsOnSale
		}
		if req.IsNewArrival != nil {
			updateSet["isNewArrival"] = *req.IsNewArrival
		}
		if req.IsBestSeller != nil {
			updateSet["isBestSeller"] = *req.IsBestSeller
		}
		if req.AvailableFrom != nil {
			updateSet["availableFrom"] = *req.AvailableFrom
		}
		if req.AvailableTo != nil {
			updateSet["availableTo"] = *req.AvailableTo
		}

		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		var updated models.Product
		err = db.Collection("products").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": updateSet},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /admin/api/products/:id
*/
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
