package models

import "time"

// DeviceEntry is one browser/OS combination an account has logged in from.
type DeviceEntry struct {
	DeviceID       string    `json:"deviceId"`
	Browser        string    `json:"browser"`
	BrowserVersion string    `json:"browserVersion"`
	OS             string    `json:"os"`
	OSVersion      string    `json:"osVersion"`
	DeviceType     string    `json:"deviceType"`
	Date           time.Time `json:"date"`
}

// DeviceList serializes as a JSON array column.
type DeviceList []DeviceEntry

// RoleAdmin is the role string checked for administrative access.
const RoleAdmin = "Admin"

// UserModel is a login-capable account. Email is stored lowercased and is
// globally unique. ExternalID references the identity-provider record that
// mirrors this account.
type UserModel struct {
	Base
	DisplayName string     `json:"displayName" gorm:"not null"`
	Email       string     `json:"email"       gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"           gorm:"not null"`
	Role        string     `json:"role"        gorm:"not null"`
	ExternalID  string     `json:"externalId"  gorm:"not null"`
	Disabled    bool       `json:"disabled"    gorm:"default:false"`
	Devices     DeviceList `json:"deviceInfo"  gorm:"type:json;serializer:json"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the account holds the administrative role.
func (u *UserModel) IsAdmin() bool { return u.Role == RoleAdmin }
