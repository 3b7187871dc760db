package auth

import (
	"errors"
	"strings"

	"github.com/naturals/core/internal/models"
	jwtpkg "github.com/naturals/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login authenticates credentials, applies the device policy and issues a
// signed token. The device evaluation and list reconciliation run before
// token issuance; a denied device rejects the login with no state change.
func (s *Service) Login(email, password string, device models.DeviceEntry) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errWrongPassword
	}

	if !EvaluateDevice(u.Devices, device) {
		return "", nil, errDeviceDenied
	}

	u.Devices = ReconcileDevices(u.Devices, device)
	if err := s.db.Model(&u).Update("devices", u.Devices).Error; err != nil {
		return "", nil, err
	}

	token, err := jwtpkg.Sign(u.ID, u.Email, u.Role, TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// GetProfile resolves an account by id, omitting the credential hash.
func (s *Service) GetProfile(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Omit("password").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
