package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/naturals/core/internal/models"
	"github.com/naturals/core/internal/pkg/cache"
	"github.com/naturals/core/internal/pkg/pagination"
	pkgredis "github.com/naturals/core/internal/pkg/redis"
	"github.com/naturals/core/internal/pkg/response"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BlogModel{}))

	mr := miniredis.RunT(t)
	rc := pkgredis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	cacheSvc := cache.New(rc, zap.NewNop(), time.Hour)

	return NewService(db, cacheSvc), mr
}

func createDTO(title string) *CreateBlogDTO {
	return &CreateBlogDTO{
		Title:    title,
		Content:  "Some **markdown** content.",
		ImageURL: "https://cdn.example.com/img.jpg",
		Category: "technology",
	}
}

func strptr(s string) *string { return &s }

func TestCreate_DerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createDTO("Hello World!"))
	require.NoError(t, err)
	assert.Equal(t, "hello_world", b.Slug)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Hello World!", b.MetaTitle)
	assert.Equal(t, "Hello World!...", b.MetaDescription)
}

func TestCreate_SlugCollisionGetsSuffix(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, createDTO("Hello World"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createDTO("Hello, World!"))
	require.NoError(t, err)
	third, err := svc.Create(ctx, createDTO("HELLO WORLD"))
	require.NoError(t, err)

	assert.Equal(t, "hello_world", first.Slug)
	assert.Equal(t, "hello_world-1", second.Slug)
	assert.Equal(t, "hello_world-2", third.Slug)
}

func TestCreate_LostSlugRaceMapsToConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// A rival insert lands between the slug existence check and our insert;
	// the unique index reports the loss as a conflict.
	injected := false
	err := svc.db.Callback().Create().Before("gorm:create").Register("rival_insert", func(tx *gorm.DB) {
		if injected {
			return
		}
		injected = true
		rival := models.BlogModel{
			Title:    "Hello World",
			Slug:     "hello_world",
			Content:  "rival content",
			ImageURL: "https://cdn.example.com/rival.jpg",
			Category: "technology",
		}
		require.NoError(t, svc.db.Create(&rival).Error)
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, createDTO("Hello World"))
	require.ErrorIs(t, err, errSlugConflict)
}

func TestCreate_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	dto := createDTO("Some Title")
	dto.Category = "gardening"
	_, err := svc.Create(context.Background(), dto)
	require.ErrorIs(t, err, errInvalidCategory)
}

func TestList_CachesSerializedPayload(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createDTO("First Post"))
	require.NoError(t, err)

	q := pagination.Query{}
	lq := ListQuery{Sort: "-createdAt"}

	fresh, hit, err := svc.List(ctx, q, lq)
	require.NoError(t, err)
	assert.False(t, hit)

	cached, hit, err := svc.List(ctx, q, lq)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, fresh, cached)
}

func TestList_DistinctQueriesDistinctKeys(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createDTO("Tech Post"))
	require.NoError(t, err)

	_, _, err = svc.List(ctx, pagination.Query{}, ListQuery{Sort: "-createdAt"})
	require.NoError(t, err)
	_, _, err = svc.List(ctx, pagination.Query{}, ListQuery{Category: "technology", Sort: "-createdAt"})
	require.NoError(t, err)
	_, _, err = svc.List(ctx, pagination.Query{}, ListQuery{Featured: "true", Sort: "-createdAt"})
	require.NoError(t, err)

	keys := mr.Keys()
	assert.Len(t, keys, 3)
}

func TestList_FeaturedFilterDoesNotPolluteUnfiltered(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	featured := createDTO("Featured Post")
	isFeatured := true
	featured.IsFeatured = &isFeatured
	_, err := svc.Create(ctx, featured)
	require.NoError(t, err)
	_, err = svc.Create(ctx, createDTO("Plain Post"))
	require.NoError(t, err)

	raw, hit, err := svc.List(ctx, pagination.Query{}, ListQuery{Featured: "true", Sort: "-createdAt"})
	require.NoError(t, err)
	assert.False(t, hit)
	var featuredOnly []models.BlogModel
	require.NoError(t, json.Unmarshal(raw, &featuredOnly))
	require.Len(t, featuredOnly, 1)

	// the unfiltered list must not be served from the featured entry
	raw, hit, err = svc.List(ctx, pagination.Query{}, ListQuery{Sort: "-createdAt"})
	require.NoError(t, err)
	assert.False(t, hit)
	var all []models.BlogModel
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 2)
}

func TestList_UnknownSortFallsBack(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createDTO("A Post"))
	require.NoError(t, err)

	raw, _, err := svc.List(ctx, pagination.Query{}, ListQuery{Sort: "evil; DROP TABLE"})
	require.NoError(t, err)

	var blogs []models.BlogModel
	require.NoError(t, json.Unmarshal(raw, &blogs))
	assert.Len(t, blogs, 1)
}

func TestList_PaginatedPayloadShape(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, createDTO(fmt.Sprintf("Post Number %d", i)))
		require.NoError(t, err)
	}

	raw, _, err := svc.List(ctx, pagination.Query{Page: 1, Size: 2}, ListQuery{Sort: "title"})
	require.NoError(t, err)

	var payload struct {
		Data       []models.BlogModel  `json:"data"`
		Pagination response.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Len(t, payload.Data, 2)
	assert.EqualValues(t, 5, payload.Pagination.Total)
	assert.Equal(t, 1, payload.Pagination.CurrentPage)
	assert.Equal(t, 3, payload.Pagination.TotalPage)
	assert.True(t, payload.Pagination.HasNextPage)
}

func TestGetBySlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createDTO("Readable Post"))
	require.NoError(t, err)

	raw, hit, err := svc.GetBySlug(ctx, "readable_post", false)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NotNil(t, raw)

	var got models.BlogModel
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created.ID, got.ID)

	// second read comes from cache, byte-identical
	cached, hit, err := svc.GetBySlug(ctx, "readable_post", false)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, raw, cached)

	// lookup by id resolves the same post
	byID, _, err := svc.GetBySlug(ctx, created.ID, false)
	require.NoError(t, err)
	require.NotNil(t, byID)
}

func TestGetBySlug_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	raw, hit, err := svc.GetBySlug(context.Background(), "nope", false)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, raw)
}

func TestGetBySlug_RenderedVariantCachesSeparately(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createDTO("Rendered Post"))
	require.NoError(t, err)

	rendered, _, err := svc.GetBySlug(ctx, "rendered_post", true)
	require.NoError(t, err)
	plain, _, err := svc.GetBySlug(ctx, "rendered_post", false)
	require.NoError(t, err)

	assert.NotEqual(t, rendered, plain)
	assert.True(t, mr.Exists("blogs:one:rendered_post"))
	assert.True(t, mr.Exists("blogs:one:rendered_post:html"))

	var got models.BlogModel
	require.NoError(t, json.Unmarshal(rendered, &got))
	assert.Contains(t, got.Content, "<strong>markdown</strong>")
}

func TestUpdate_TitleChangeRecomputesSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createDTO("Old Title"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, b.ID, &UpdateBlogDTO{Title: strptr("New Title")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new_title", updated.Slug)
}

func TestUpdate_NonTitleChangeKeepsSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createDTO("Stable Title"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, b.ID, &UpdateBlogDTO{Content: strptr("Fresh content")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "stable_title", updated.Slug)
	assert.Equal(t, "Fresh content", updated.Content)
}

func TestUpdate_SameTitleDoesNotCollideWithSelf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createDTO("Kept Title"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, b.ID, &UpdateBlogDTO{
		Title:   strptr("Kept  Title"),
		Content: strptr("tweaked"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "kept_title", updated.Slug)
}

func TestUpdate_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	updated, err := svc.Update(context.Background(), "no-such-id", &UpdateBlogDTO{Title: strptr("X")})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestWritesInvalidateCache(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, createDTO("Cached Post"))
	require.NoError(t, err)

	_, _, err = svc.List(ctx, pagination.Query{}, ListQuery{Sort: "-createdAt"})
	require.NoError(t, err)
	_, _, err = svc.GetBySlug(ctx, "cached_post", false)
	require.NoError(t, err)
	require.NotEmpty(t, mr.Keys())

	_, err = svc.Update(ctx, b.ID, &UpdateBlogDTO{Content: strptr("changed")})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())

	// re-populate, then delete invalidates again
	_, _, err = svc.List(ctx, pagination.Query{}, ListQuery{Sort: "-createdAt"})
	require.NoError(t, err)
	require.NotEmpty(t, mr.Keys())

	ok, err := svc.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, mr.Keys())
}

func TestDelete_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	ok, err := svc.Delete(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCleanTags(t *testing.T) {
	t.Parallel()

	got := cleanTags([]string{" go ", "go", "", "redis", "go"})
	assert.Equal(t, []string{"go", "redis"}, got)
}

func TestDefaultMetaDescription(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Short Title...", defaultMetaDescription("Short Title"))

	long := strings.Repeat("ä", 200)
	got := defaultMetaDescription(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ä", 160)+"...", got)
}
