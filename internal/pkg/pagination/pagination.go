package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/naturals/core/internal/pkg/response"
	"gorm.io/gorm"
)

const MaxSize = 100

// Query holds parsed pagination parameters. Zero values mean the request
// asked for the full, unpaginated collection.
type Query struct {
	Page int
	Size int
}

// Paged reports whether pagination was requested.
func (q Query) Paged() bool { return q.Page > 0 && q.Size > 0 }

// FromContext extracts pagination params from the request. Absent params
// leave the query unpaginated.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.Query("page"), 0)
	size := parseIntOr(c.Query("size"), 0)

	if page > 0 && size <= 0 {
		size = 10
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// Paginate applies limit/offset to a GORM query when pagination was
// requested and returns the pagination metadata.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	if !q.Paged() {
		if err := db.Find(dest).Error; err != nil {
			return response.Pagination{}, err
		}
		return response.Pagination{Total: total, CurrentPage: 1, TotalPage: 1, Size: len(*dest)}, nil
	}

	offset := (q.Page - 1) * q.Size
	if err := db.Offset(offset).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))

	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
