package auth

import (
	"errors"
	"time"

	"github.com/naturals/core/internal/models"
)

// TokenTTL is the lifetime of an issued login token.
const TokenTTL = 24 * time.Hour

type deviceInfoDTO struct {
	DeviceID       string `json:"deviceId"       binding:"required"`
	Browser        string `json:"browser"        binding:"required"`
	BrowserVersion string `json:"browserVersion" binding:"required"`
	OS             string `json:"os"             binding:"required"`
	OSVersion      string `json:"osVersion"      binding:"required"`
	DeviceType     string `json:"deviceType"     binding:"required"`
}

func (d deviceInfoDTO) toEntry() models.DeviceEntry {
	return models.DeviceEntry{
		DeviceID:       d.DeviceID,
		Browser:        d.Browser,
		BrowserVersion: d.BrowserVersion,
		OS:             d.OS,
		OSVersion:      d.OSVersion,
		DeviceType:     d.DeviceType,
		Date:           time.Now(),
	}
}

// LoginDTO is the request body for POST /login.
type LoginDTO struct {
	Email      string        `json:"email"    binding:"required"`
	Password   string        `json:"password" binding:"required"`
	DeviceInfo deviceInfoDTO `json:"deviceInfo" binding:"required"`
}

type profileResponse struct {
	ID          string `json:"_id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	ExternalID  string `json:"externalId"`
	Disabled    bool   `json:"disabled"`
}

var (
	errUserNotFound  = errors.New("auth user not found")
	errWrongPassword = errors.New("auth wrong password")
	errDeviceDenied  = errors.New("device limit reached")
)
