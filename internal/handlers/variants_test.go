package handlers

import (
	"strings"
	"testing"
)

func TestNormalizeVariantsCoercesNumericStrings(t *testing.T) {
	variants, err := normalizeVariants([]VariantInput{
		{SKU: "TS-RED-M", Price: "19.99", Quantity: "5", SalePrice: "14.99"},
	})
	if err != nil {
		t.Fatalf("normalizeVariants returned error: %v", err)
	}
	if len(variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(variants))
	}
	v := variants[0]
	if v.Price != 19.99 {
		t.Fatalf("expected price 19.99, got %v", v.Price)
	}
	if v.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %v", v.Quantity)
	}
	if v.SalePrice == nil || *v.SalePrice != 14.99 {
		t.Fatalf("expected salePrice 14.99, got %v", v.SalePrice)
	}
}

func TestNormalizeVariantsAcceptsNumbers(t *testing.T) {
	variants, err := normalizeVariants([]VariantInput{
		{SKU: "TS-RED-L", Price: 25.0, Quantity: 3.0},
	})
	if err != nil {
		t.Fatalf("normalizeVariants returned error: %v", err)
	}
	if variants[0].Price != 25 || variants[0].Quantity != 3 {
		t.Fatalf("unexpected variant values: %+v", variants[0])
	}
	if variants[0].SalePrice != nil {
		t.Fatal("expected salePrice to stay unset")
	}
}

func TestNormalizeVariantsRejectsNonNumericPrice(t *testing.T) {
	_, err := normalizeVariants([]VariantInput{
		{SKU: "TS-BLU-M", Price: "abc", Quantity: 1.0},
	})
	if err == nil {
		t.Fatal("expected error for non-numeric price")
	}
	if !strings.Contains(err.Error(), "TS-BLU-M") {
		t.Fatalf("expected error to name the offending SKU, got %q", err.Error())
	}
}

func TestNormalizeVariantsRejectsNonNumericQuantity(t *testing.T) {
	_, err := normalizeVariants([]VariantInput{
		{SKU: "TS-BLU-L", Price: 10.0, Quantity: "lots"},
	})
	if err == nil {
		t.Fatal("expected error for non-numeric quantity")
	}
	if !strings.Contains(err.Error(), "quantity") {
		t.Fatalf("expected quantity error, got %q", err.Error())
	}
}

func TestNormalizeVariantsRejectsNonNumericSalePrice(t *testing.T) {
	_, err := normalizeVariants([]VariantInput{
		{SKU: "TS-GRN-M", Price: 10.0, Quantity: 1.0, SalePrice: "cheap"},
	})
	if err == nil {
		t.Fatal("expected error for non-numeric sale price")
	}
	if !strings.Contains(err.Error(), "sale price") {
		t.Fatalf("expected sale price error, got %q", err.Error())
	}
}

func TestCoerceNumberRejectsMissingValue(t *testing.T) {
	if _, err := coerceNumber(nil); err == nil {
		t.Fatal("expected error for nil value")
	}
}
