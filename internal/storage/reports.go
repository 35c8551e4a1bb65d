package storage

import (
	"github.com/Harukino1/ReturnHub/internal/models"
)

func (s *Service) CreateReport(report *models.SubmittedReport) error {
	return s.DB.Create(report).Error
}

func (s *Service) GetReportByID(id uint) (*models.SubmittedReport, error) {
	var report models.SubmittedReport
	if err := s.DB.First(&report, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &report, nil
}

func (s *Service) ListReports() ([]models.SubmittedReport, error) {
	var reports []models.SubmittedReport
	if err := s.DB.Order("date_submitted desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) ListReportsByUser(userID uint, typeFilter string) ([]models.SubmittedReport, error) {
	var reports []models.SubmittedReport
	q := s.DB.Where("submitter_user_id = ?", userID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	if err := q.Order("date_submitted desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) ListReportsByStatus(status string) ([]models.SubmittedReport, error) {
	var reports []models.SubmittedReport
	if err := s.DB.Where("status = ?", status).Order("date_submitted asc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) DeleteReport(id uint) error {
	return s.DB.Delete(&models.SubmittedReport{}, id).Error
}

// TransitionReport applies updates only while the report still sits in one
// of fromStatuses. RowsAffected == 0 means another writer won the race (or
// the report is in a different state) and the caller must not fire side
// effects.
func (s *Service) TransitionReport(id uint, fromStatuses []string, updates map[string]any) (bool, error) {
	res := s.DB.Model(&models.SubmittedReport{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
