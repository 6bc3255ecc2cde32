package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"storefront/internal/models"
)

// VariantInput accepts price, salePrice and quantity as either numbers or
// numeric strings; normalizeVariants coerces them before storage.
type VariantInput struct {
	SKU        string            `json:"sku" binding:"required"`
	Name       string            `json:"name"`
	Price      interface{}       `json:"price"`
	SalePrice  interface{}       `json:"salePrice"`
	Quantity   interface{}       `json:"quantity"`
	SoldCount  int64             `json:"soldCount"`
	Attributes map[string]string `json:"attributes"`
	Images     []string          `json:"images"`
}

func normalizeVariants(inputs []VariantInput) ([]models.ProductVariant, error) {
	variants := make([]models.ProductVariant, 0, len(inputs))

	for _, input := range inputs {
		price, err := coerceNumber(input.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price value in variant: %s", input.SKU)
		}

		quantity, err := coerceNumber(input.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity value in variant: %s", input.SKU)
		}

		variant := models.ProductVariant{
			SKU:        strings.TrimSpace(input.SKU),
			Name:       strings.TrimSpace(input.Name),
			Price:      price,
			Quantity:   int64(quantity),
			SoldCount:  input.SoldCount,
			Attributes: input.Attributes,
			Images:     input.Images,
		}
		if variant.Images == nil {
			variant.Images = []string{}
		}

		if input.SalePrice != nil {
			salePrice, err := coerceNumber(input.SalePrice)
			if err != nil {
				return nil, fmt.Errorf("invalid sale price value in variant: %s", input.SKU)
			}
			variant.SalePrice = &salePrice
		}

		variants = append(variants, variant)
	}

	return variants, nil
}

func coerceNumber(value interface{}) (float64, error) {
	var num float64

	switch typed := value.(type) {
	case float64:
		num = typed
	case float32:
		num = float64(typed)
	case int:
		num = float64(typed)
	case int32:
		num = float64(typed)
	case int64:
		num = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, err
		}
		num = parsed
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}

	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, fmt.Errorf("not a finite number: %v", value)
	}
	return num, nil
}
