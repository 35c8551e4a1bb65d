package storage

import (
	"github.com/Harukino1/ReturnHub/internal/models"
)

func (s *Service) CreateLostItem(item *models.LostItem) error {
	return s.DB.Create(item).Error
}

func (s *Service) CreateFoundItem(item *models.FoundItem) error {
	return s.DB.Create(item).Error
}

func (s *Service) GetLostItemByID(id uint) (*models.LostItem, error) {
	var item models.LostItem
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &item, nil
}

func (s *Service) GetFoundItemByID(id uint) (*models.FoundItem, error) {
	var item models.FoundItem
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &item, nil
}

func (s *Service) GetLostItemByReportID(reportID uint) (*models.LostItem, error) {
	var item models.LostItem
	err := s.DB.Where("submitted_report_id = ?", reportID).First(&item).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &item, nil
}

func (s *Service) GetFoundItemByReportID(reportID uint) (*models.FoundItem, error) {
	var item models.FoundItem
	err := s.DB.Where("submitted_report_id = ?", reportID).First(&item).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &item, nil
}

func (s *Service) SaveLostItem(item *models.LostItem) error {
	return s.DB.Save(item).Error
}

func (s *Service) SaveFoundItem(item *models.FoundItem) error {
	return s.DB.Save(item).Error
}

func (s *Service) ListLostItemsByStatus(status string) ([]models.LostItem, error) {
	var items []models.LostItem
	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) ListFoundItemsByStatus(status string) ([]models.FoundItem, error) {
	var items []models.FoundItem
	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
