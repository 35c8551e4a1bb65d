package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Harukino1/ReturnHub/internal/models"
)

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("lower(email) = lower(?)", email).First(&user).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &user, nil
}

func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) DeleteUser(id uint) error {
	return s.DB.Delete(&models.User{}, id).Error
}

func (s *Service) CreateStaff(staff *models.Staff) error {
	return s.DB.Create(staff).Error
}

func (s *Service) GetStaffByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := s.DB.First(&staff, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &staff, nil
}

// GetStaffByEmailOrName resolves a staff login identifier, matching the
// email first and falling back to the account name.
func (s *Service) GetStaffByEmailOrName(username string) (*models.Staff, error) {
	var staff models.Staff
	err := s.DB.Where("lower(email) = lower(?)", username).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.DB.Where("name = ?", username).First(&staff).Error
	}
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &staff, nil
}

func (s *Service) ListStaff() ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.DB.Order("id asc").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) SaveStaff(staff *models.Staff) error {
	return s.DB.Save(staff).Error
}

func (s *Service) DeleteStaff(id uint) error {
	return s.DB.Delete(&models.Staff{}, id).Error
}
