package blog

import (
	"errors"
	"strings"
)

// CreateBlogDTO is the request body for creating a post.
type CreateBlogDTO struct {
	Title           string   `json:"title"           binding:"required"`
	Content         string   `json:"content"         binding:"required"`
	ImageURL        string   `json:"imageUrl"        binding:"required"`
	Category        string   `json:"category"        binding:"required"`
	IsFeatured      *bool    `json:"isFeatured"`
	Tags            []string `json:"tags"`
	YoutubeURL      *string  `json:"youtubeUrl"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
}

// UpdateBlogDTO is the request body for updating a post (all fields optional).
type UpdateBlogDTO struct {
	Title           *string  `json:"title"`
	Content         *string  `json:"content"`
	ImageURL        *string  `json:"imageUrl"`
	Category        *string  `json:"category"`
	IsFeatured      *bool    `json:"isFeatured"`
	Tags            []string `json:"tags"`
	YoutubeURL      *string  `json:"youtubeUrl"`
	MetaTitle       *string  `json:"metaTitle"`
	MetaDescription *string  `json:"metaDescription"`
}

// ListQuery holds query params for listing posts.
type ListQuery struct {
	Category string `form:"category"`
	Featured string `form:"featured"`
	Search   string `form:"search"`
	Sort     string `form:"sort,default=-createdAt"`
}

var (
	errSlugConflict    = errors.New("a blog with a similar title already exists")
	errInvalidCategory = errors.New("invalid category")
)

// cleanTags trims entries, drops empties and deduplicates, preserving order.
func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// defaultMetaDescription derives an SEO description from the title,
// truncated to 160 characters. Truncation counts runes so a multi-byte
// title is never cut mid-character.
func defaultMetaDescription(title string) string {
	if runes := []rune(title); len(runes) > 160 {
		title = string(runes[:160])
	}
	return title + "..."
}
