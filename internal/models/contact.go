package models

// SocialLink is one (title, link) social-media entry.
type SocialLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// SocialLinks serializes as a JSON array column.
type SocialLinks []SocialLink

// ContactModel holds the site contact record.
type ContactModel struct {
	Base
	Emails       StringSlice `json:"emails"       gorm:"type:json;serializer:json"`
	PhoneNumbers StringSlice `json:"phoneNumbers" gorm:"type:json;serializer:json"`
	Address      string      `json:"address"      gorm:"not null"`
	SocialLinks  SocialLinks `json:"socialLinks"  gorm:"type:json;serializer:json"`
}

func (ContactModel) TableName() string { return "contacts" }
