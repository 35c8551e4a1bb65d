package storage

import (
	"github.com/Harukino1/ReturnHub/internal/models"
)

func (s *Service) CreateClaim(claim *models.Claim) error {
	return s.DB.Create(claim).Error
}

func (s *Service) GetClaimByID(id uint) (*models.Claim, error) {
	var claim models.Claim
	if err := s.DB.First(&claim, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &claim, nil
}

func (s *Service) ListClaims(statusFilter string) ([]models.Claim, error) {
	var claims []models.Claim
	q := s.DB.Order("date_submitted desc")
	if statusFilter != "" {
		q = q.Where("status = ?", statusFilter)
	}
	if err := q.Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) ListClaimsByUser(userID uint) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.DB.Where("claimant_user_id = ?", userID).
		Order("date_submitted desc").Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ListClaimsByItem returns claims against either item table for the given
// item id; lost and found items live in separate tables so a single id can
// match both.
func (s *Service) ListClaimsByItem(itemID uint) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.DB.Where("lost_item_id = ? OR found_item_id = ?", itemID, itemID).
		Order("date_submitted desc").Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) CountClaimsByStatus(status string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Claim{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s *Service) DeleteClaim(id uint) error {
	return s.DB.Delete(&models.Claim{}, id).Error
}

// TransitionClaim applies updates only while the claim is still in
// fromStatus; RowsAffected == 0 means a concurrent decision already landed.
func (s *Service) TransitionClaim(id uint, fromStatus string, updates map[string]any) (bool, error) {
	res := s.DB.Model(&models.Claim{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
