package models

// BlogCategories is the closed set of categories accepted on write.
var BlogCategories = []string{"technology", "business", "education", "marketing"}

// ValidBlogCategory reports whether c is an accepted category.
func ValidBlogCategory(c string) bool {
	for _, v := range BlogCategories {
		if v == c {
			return true
		}
	}
	return false
}

// BlogModel is a content article. Slug is derived from Title and unique
// across all posts; the unique index converts a lost slug race into a
// duplicate-key error instead of a silent overwrite.
type BlogModel struct {
	Base
	Title           string      `json:"title"           gorm:"not null"`
	Slug            string      `json:"title_id"        gorm:"uniqueIndex;not null"`
	Content         string      `json:"content"         gorm:"type:longtext"`
	ImageURL        string      `json:"imageUrl"        gorm:"not null"`
	Category        string      `json:"category"        gorm:"index;not null"`
	IsFeatured      bool        `json:"isFeatured"      gorm:"default:false;index"`
	Tags            StringSlice `json:"tags"            gorm:"type:json;serializer:json"`
	YoutubeURL      *string     `json:"youtubeUrl"`
	MetaTitle       string      `json:"metaTitle"`
	MetaDescription string      `json:"metaDescription"`
}

func (BlogModel) TableName() string { return "blogs" }
