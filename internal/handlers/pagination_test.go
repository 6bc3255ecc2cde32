package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("parsePaginationParams returned error: %v", err)
	}
	if page != 1 || limit != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsInvalid(t *testing.T) {
	cases := [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"1", "0"},
		{"abc", "10"},
		{"1", "abc"},
	}
	for _, tc := range cases {
		if _, _, err := parsePaginationParams(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", tc[0], tc[1])
		}
	}
}

func TestBuildPageMeta(t *testing.T) {
	meta := buildPageMeta(25, 2, 10)
	if meta.Total != 25 || meta.Page != 2 || meta.Limit != 10 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
}

func TestBuildPageMetaZeroTotal(t *testing.T) {
	meta := buildPageMeta(0, 1, 10)
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty result, got %d", meta.TotalPages)
	}
}

func TestParseLimitParamFallback(t *testing.T) {
	if got := parseLimitParam("", 4); got != 4 {
		t.Fatalf("expected fallback 4, got %d", got)
	}
	if got := parseLimitParam("12", 4); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := parseLimitParam("junk", 4); got != 4 {
		t.Fatalf("expected fallback for junk, got %d", got)
	}
}
