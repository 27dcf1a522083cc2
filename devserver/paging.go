package devserver

import (
	"strconv"

	"zavio/models"

	"github.com/gin-gonic/gin"
)

func pageParams(c *gin.Context, defaultPage, defaultLimit int) (int, int) {
	page := defaultPage
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit := defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) ([]T, models.PageMeta) {
	total := len(items)
	totalPages := (total + limit - 1) / limit
	meta := models.PageMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
	start := (page - 1) * limit
	if start >= total {
		return []T{}, meta
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], meta
}
