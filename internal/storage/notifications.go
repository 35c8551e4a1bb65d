package storage

import (
	"github.com/Harukino1/ReturnHub/internal/models"
)

func (s *Service) CreateNotification(n *models.Notification) error {
	return s.DB.Create(n).Error
}

func (s *Service) GetNotificationByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.First(&n, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &n, nil
}

func (s *Service) SaveNotification(n *models.Notification) error {
	return s.DB.Save(n).Error
}

func (s *Service) ListNotificationsByUser(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) ListRecentNotificationsByUser(userID uint, limit int) ([]models.Notification, error) {
	if limit < 1 {
		limit = 1
	}
	var list []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) CountUnreadNotifications(userID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

func (s *Service) MarkAllNotificationsRead(userID uint) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (s *Service) DeleteNotification(id uint) error {
	return s.DB.Delete(&models.Notification{}, id).Error
}

func (s *Service) ClearNotifications(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
