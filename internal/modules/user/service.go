package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/naturals/core/internal/models"
	"github.com/naturals/core/internal/pkg/identity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service manages accounts. Lifecycle operations touch both the identity
// provider and the local store; the provider is called first so a provider
// refusal leaves the local record untouched.
type Service struct {
	db       *gorm.DB
	provider identity.Provider
	log      *zap.Logger
}

func NewService(db *gorm.DB, provider identity.Provider, log *zap.Logger) *Service {
	return &Service{db: db, provider: provider, log: log}
}

func (s *Service) List() ([]models.UserModel, error) {
	var users []models.UserModel
	return users, s.db.Omit("password").Order("created_at ASC").Find(&users).Error
}

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Omit("password").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) GetByEmail(email string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.Omit("password").Where("email = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create registers the identity with the provider and inserts the local
// record. If the insert fails after the identity was created, the identity
// is deleted again so the two sides stay consistent.
func (s *Service) Create(ctx context.Context, dto *CreateUserDTO) (*models.UserModel, error) {
	email := strings.ToLower(dto.Email)

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	externalID, err := s.provider.CreateIdentity(ctx, email, dto.Password, dto.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	u := models.UserModel{
		DisplayName: dto.DisplayName,
		Email:       email,
		Password:    string(hash),
		Role:        dto.Role,
		ExternalID:  externalID,
		Devices:     models.DeviceList{},
	}
	if err := s.db.Create(&u).Error; err != nil {
		if delErr := s.provider.DeleteIdentity(ctx, externalID); delErr != nil {
			s.log.Error("orphaned external identity after failed insert",
				zap.String("external_id", externalID), zap.Error(delErr))
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailInUse
		}
		return nil, err
	}
	return &u, nil
}

// UpdateInfo patches credentials and identity fields, mirroring them to the
// provider before the local write.
func (s *Service) UpdateInfo(ctx context.Context, id string, dto *UpdateUserDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}

	patch := identity.Patch{DisplayName: dto.DisplayName, Password: dto.Password}
	updates := map[string]interface{}{}
	if dto.Email != nil {
		email := strings.ToLower(*dto.Email)
		patch.Email = &email
		updates["email"] = email
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if dto.DisplayName != nil {
		updates["display_name"] = *dto.DisplayName
	}

	if patch.Email != nil || patch.Password != nil || patch.DisplayName != nil {
		if err := s.provider.UpdateIdentity(ctx, u.ExternalID, patch); err != nil {
			return nil, fmt.Errorf("update identity: %w", err)
		}
	}

	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailInUse
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile patches local-only profile fields.
func (s *Service) UpdateProfile(id string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}

	updates := map[string]interface{}{}
	if dto.DisplayName != nil {
		updates["display_name"] = *dto.DisplayName
	}
	if dto.Email != nil {
		updates["email"] = strings.ToLower(*dto.Email)
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailInUse
		}
		return nil, err
	}
	return u, nil
}

// Delete removes the external identity and then the local record.
func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return errUserNotFound
	}
	if err := s.provider.DeleteIdentity(ctx, u.ExternalID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return s.db.Delete(&models.UserModel{}, "id = ?", id).Error
}

// SetDisabled flips the disabled flag on the provider and locally.
func (s *Service) SetDisabled(ctx context.Context, id string, disabled bool) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return errUserNotFound
	}
	if err := s.provider.SetDisabled(ctx, u.ExternalID, disabled); err != nil {
		return fmt.Errorf("set identity disabled: %w", err)
	}
	return s.db.Model(u).Update("disabled", disabled).Error
}

// RemoveDevice drops the device entry with the given identifier from the
// account with the given email.
func (s *Service) RemoveDevice(email, deviceID string) error {
	u, err := s.GetByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return errUserNotFound
	}

	next := make(models.DeviceList, 0, len(u.Devices))
	for _, d := range u.Devices {
		if d.DeviceID != deviceID {
			next = append(next, d)
		}
	}
	return s.db.Model(u).Update("devices", next).Error
}

// RevokeSessions asks the provider to invalidate every session of the given
// external identity.
func (s *Service) RevokeSessions(ctx context.Context, externalID string) error {
	return s.provider.RevokeSessions(ctx, externalID)
}
