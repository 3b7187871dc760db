package blog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/naturals/core/internal/models"
	"github.com/naturals/core/internal/pkg/cache"
	"github.com/naturals/core/internal/pkg/markdown"
	"github.com/naturals/core/internal/pkg/pagination"
	"github.com/naturals/core/internal/pkg/response"
	"github.com/naturals/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// cacheKind prefixes every cache key this module writes.
const cacheKind = "blogs"

var sortColumns = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"updatedAt":  "updated_at ASC",
	"-updatedAt": "updated_at DESC",
	"title":      "title ASC",
	"-title":     "title DESC",
}

// Service handles blog reads through the cache layer and writes with broad
// cache invalidation.
type Service struct {
	db    *gorm.DB
	cache *cache.Service
}

func NewService(db *gorm.DB, cacheSvc *cache.Service) *Service {
	return &Service{db: db, cache: cacheSvc}
}

type listPayload struct {
	Data       []models.BlogModel  `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// List returns the serialized list response for the given query, from cache
// when a previous identical query is still live.
func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]byte, bool, error) {
	sortClause, ok := sortColumns[lq.Sort]
	if !ok {
		lq.Sort = "-createdAt"
		sortClause = sortColumns[lq.Sort]
	}

	key := cache.ListKey(cacheKind, lq.Category, lq.Featured, lq.Search, lq.Sort, q.Page, q.Size)
	if payload, hit := s.cache.Get(ctx, key); hit {
		return []byte(payload), true, nil
	}

	tx := s.db.Model(&models.BlogModel{}).Order(sortClause)
	if lq.Category != "" {
		tx = tx.Where("category = ?", lq.Category)
	}
	if lq.Featured != "" {
		tx = tx.Where("is_featured = ?", true)
	}
	if lq.Search != "" {
		term := "%" + lq.Search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ? OR tags LIKE ?", term, term, term)
	}

	var blogs []models.BlogModel
	pag, err := pagination.Paginate(tx, q, &blogs)
	if err != nil {
		return nil, false, err
	}
	if blogs == nil {
		blogs = []models.BlogModel{}
	}

	var raw []byte
	if q.Paged() {
		raw, err = json.Marshal(listPayload{Data: blogs, Pagination: pag})
	} else {
		raw, err = json.Marshal(blogs)
	}
	if err != nil {
		return nil, false, err
	}

	s.cache.Set(ctx, key, string(raw))
	return raw, false, nil
}

// GetBySlug returns the serialized post for a slug, optionally with the
// content rendered to HTML. Rendered and raw variants cache under distinct
// keys. A missing post returns (nil, false, nil).
func (s *Service) GetBySlug(ctx context.Context, slugOrID string, renderHTML bool) ([]byte, bool, error) {
	identifier := slugOrID
	if renderHTML {
		identifier += ":html"
	}
	key := cache.ItemKey(cacheKind, identifier)
	if payload, hit := s.cache.Get(ctx, key); hit {
		return []byte(payload), true, nil
	}

	var b models.BlogModel
	err := s.db.Where("slug = ? OR id = ?", slugOrID, slugOrID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if renderHTML {
		b.Content = markdown.Render(b.Content)
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(ctx, key, string(raw))
	return raw, false, nil
}

// Create inserts a new post, deriving a unique slug from the title.
func (s *Service) Create(ctx context.Context, dto *CreateBlogDTO) (*models.BlogModel, error) {
	if !models.ValidBlogCategory(dto.Category) {
		return nil, errInvalidCategory
	}

	newSlug, err := s.uniqueSlug(dto.Title, "")
	if err != nil {
		return nil, err
	}

	b := models.BlogModel{
		Title:           dto.Title,
		Slug:            newSlug,
		Content:         dto.Content,
		ImageURL:        dto.ImageURL,
		Category:        dto.Category,
		Tags:            cleanTags(dto.Tags),
		YoutubeURL:      dto.YoutubeURL,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
	}
	if dto.IsFeatured != nil {
		b.IsFeatured = *dto.IsFeatured
	}
	if b.MetaTitle == "" {
		b.MetaTitle = dto.Title
	}
	if b.MetaDescription == "" {
		b.MetaDescription = defaultMetaDescription(dto.Title)
	}

	if err := s.db.Create(&b).Error; err != nil {
		// Two concurrent creations with the same title can both pass the
		// existence check; the unique index reports the loser here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSlugConflict
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.Prefix(cacheKind))
	return &b, nil
}

// Update patches a post by ID. The slug is recomputed only when the title
// changes; updates to other fields leave it untouched.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateBlogDTO) (*models.BlogModel, error) {
	var b models.BlogModel
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil && *dto.Title != b.Title {
		newSlug, err := s.uniqueSlug(*dto.Title, b.ID)
		if err != nil {
			return nil, err
		}
		updates["title"] = *dto.Title
		updates["slug"] = newSlug
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Category != nil {
		if !models.ValidBlogCategory(*dto.Category) {
			return nil, errInvalidCategory
		}
		updates["category"] = *dto.Category
	}
	if dto.IsFeatured != nil {
		updates["is_featured"] = *dto.IsFeatured
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringSlice(cleanTags(dto.Tags))
	}
	if dto.YoutubeURL != nil {
		updates["youtube_url"] = *dto.YoutubeURL
	}
	if dto.MetaTitle != nil {
		updates["meta_title"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}

	if err := s.db.Model(&b).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errSlugConflict
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.Prefix(cacheKind))
	return &b, nil
}

// Delete removes a post by ID. Returns (false, nil) when no post matched.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.Delete(&models.BlogModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.cache.Invalidate(ctx, cache.Prefix(cacheKind))
	return true, nil
}

// uniqueSlug normalizes the title and resolves collisions with a numeric
// suffix. excludeID ignores the record being updated so an unchanged base
// slug does not collide with itself.
func (s *Service) uniqueSlug(title, excludeID string) (string, error) {
	base := slug.Normalize(title)
	return slug.EnsureUnique(base, func(candidate string) (bool, error) {
		var count int64
		tx := s.db.Model(&models.BlogModel{}).Where("slug = ?", candidate)
		if excludeID != "" {
			tx = tx.Where("id <> ?", excludeID)
		}
		if err := tx.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}
