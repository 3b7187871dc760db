package contact

import (
	"errors"

	"github.com/naturals/core/internal/models"
	"gorm.io/gorm"
)

// ContactDTO is the request body for creating or replacing a contact record.
type ContactDTO struct {
	Emails       []string            `json:"emails"       binding:"required,min=1"`
	PhoneNumbers []string            `json:"phoneNumbers" binding:"required,min=1"`
	Address      string              `json:"address"      binding:"required"`
	SocialLinks  []models.SocialLink `json:"socialLinks"  binding:"dive"`
}

var errMissingSocialFields = errors.New("social links require both title and link")

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.ContactModel, error) {
	var contacts []models.ContactModel
	return contacts, s.db.Find(&contacts).Error
}

func (s *Service) GetByID(id string) (*models.ContactModel, error) {
	var contact models.ContactModel
	if err := s.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (s *Service) Create(dto *ContactDTO) (*models.ContactModel, error) {
	if err := validateSocialLinks(dto.SocialLinks); err != nil {
		return nil, err
	}
	contact := models.ContactModel{
		Emails:       dto.Emails,
		PhoneNumbers: dto.PhoneNumbers,
		Address:      dto.Address,
		SocialLinks:  dto.SocialLinks,
	}
	return &contact, s.db.Create(&contact).Error
}

func (s *Service) Update(id string, dto *ContactDTO) (*models.ContactModel, error) {
	if err := validateSocialLinks(dto.SocialLinks); err != nil {
		return nil, err
	}
	contact, err := s.GetByID(id)
	if err != nil || contact == nil {
		return contact, err
	}
	contact.Emails = dto.Emails
	contact.PhoneNumbers = dto.PhoneNumbers
	contact.Address = dto.Address
	contact.SocialLinks = dto.SocialLinks
	return contact, s.db.Save(contact).Error
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.ContactModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func validateSocialLinks(links []models.SocialLink) error {
	for _, l := range links {
		if l.Title == "" || l.Link == "" {
			return errMissingSocialFields
		}
	}
	return nil
}
