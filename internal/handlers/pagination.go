package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageMeta is the pagination envelope returned with every paged listing.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(10)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, gin.Error{}
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, gin.Error{}
		}
		limit = l
	}

	return page, limit, nil
}

func buildPageMeta(total, page, limit int64) PageMeta {
	totalPages := int64(0)
	if total > 0 {
		totalPages = int64(math.Ceil(float64(total) / float64(limit)))
	}
	return PageMeta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

func parseLimitParam(limitStr string, fallback int64) int64 {
	if limitStr == "" {
		return fallback
	}
	if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l >= 1 {
		return l
	}
	return fallback
}
