package service

import (
	"errors"
	"strings"
	"time"

	"marksapi/internal/auth"
	"marksapi/internal/model"

	"gorm.io/gorm"
)

// StaffService authenticates uploaders and creates staff accounts.
type StaffService struct {
	db *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{db: db}
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *StaffService) Authenticate(email, password string) (*model.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var staff model.Staff
	err := s.db.Where("email = ?", email).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyHash(password, staff.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &staff, nil
}

// Create adds a staff account with the given role. If the email is already
// registered the existing account is returned unchanged, so seeding is
// idempotent.
func (s *StaffService) Create(email, password, role string) (*model.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing model.Staff
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashText(password)
	if err != nil {
		return nil, err
	}

	staff := model.Staff{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}
