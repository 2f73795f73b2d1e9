package services

import (
	"github.com/adirathodd/careerpilot/internal/dtos"
	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContactService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewContactService(db *gorm.DB, logger *zap.Logger) *ContactService {
	return &ContactService{DB: db, Logger: logger}
}

func (s *ContactService) Create(req *dtos.ContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Role:    req.Role,
		Notes:   req.Notes,
	}
	if err := s.DB.Create(contact).Error; err != nil {
		return nil, err
	}
	s.Logger.Info("contact created", zap.Uint("contact_id", contact.ID), zap.String("name", contact.Name))
	return contact, nil
}

func (s *ContactService) List() ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.DB.Order("name asc").Find(&contacts).Error
	return contacts, err
}

func (s *ContactService) Get(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := s.DB.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Update(id uint, req *dtos.ContactRequest) (*models.Contact, error) {
	contact, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Role:    req.Role,
		Notes:   req.Notes,
	}
	if err := s.DB.Model(contact).Updates(updates).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Delete(id uint) error {
	res := s.DB.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
