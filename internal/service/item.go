package service

import (
	"strings"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

// ItemService exposes the public lost/found boards. Items are created only
// by ReportService.Publish; here they are listed, fetched and re-statused.
type ItemService struct {
	store storage.Storage
}

func NewItemService(store storage.Storage) *ItemService {
	return &ItemService{store: store}
}

// ListLost returns lost-item listings, optionally filtered by status.
// An empty status returns everything.
func (s *ItemService) ListLost(status string) ([]ItemResponse, error) {
	items, err := s.store.ListLostItemsByStatus(strings.ToLower(status))
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *s.lostToResponse(&items[i]))
	}
	return out, nil
}

// ListFound returns found-item listings, optionally filtered by status.
func (s *ItemService) ListFound(status string) ([]ItemResponse, error) {
	items, err := s.store.ListFoundItemsByStatus(strings.ToLower(status))
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *s.foundToResponse(&items[i]))
	}
	return out, nil
}

func (s *ItemService) GetLost(itemID uint) (*ItemResponse, error) {
	item, err := s.store.GetLostItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("lost item %d not found", itemID)
	}
	return s.lostToResponse(item), nil
}

func (s *ItemService) GetFound(itemID uint) (*ItemResponse, error) {
	item, err := s.store.GetFoundItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("found item %d not found", itemID)
	}
	return s.foundToResponse(item), nil
}

// UpdateLostStatus sets a lost item's listing status (staff tooling).
func (s *ItemService) UpdateLostStatus(itemID uint, status string) (*ItemResponse, error) {
	status, err := normalizeItemStatus(status)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetLostItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("lost item %d not found", itemID)
	}
	item.Status = status
	if err := s.store.SaveLostItem(item); err != nil {
		return nil, err
	}
	return s.lostToResponse(item), nil
}

// UpdateFoundStatus sets a found item's listing status (staff tooling).
func (s *ItemService) UpdateFoundStatus(itemID uint, status string) (*ItemResponse, error) {
	status, err := normalizeItemStatus(status)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetFoundItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("found item %d not found", itemID)
	}
	item.Status = status
	if err := s.store.SaveFoundItem(item); err != nil {
		return nil, err
	}
	return s.foundToResponse(item), nil
}

func normalizeItemStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case models.ItemStatusActive, models.ItemStatusArchived, models.ItemStatusClaimed:
		return status, nil
	}
	return "", apperr.Validation("item status must be one of %q, %q, %q",
		models.ItemStatusActive, models.ItemStatusArchived, models.ItemStatusClaimed)
}

func (s *ItemService) lostToResponse(item *models.LostItem) *ItemResponse {
	resp := &ItemResponse{
		ItemID:          item.ID,
		Status:          item.Status,
		CreatedAt:       item.CreatedAt,
		PostedByStaffID: item.PostedByStaffID,
		ReportID:        item.SubmittedReportID,
		Type:            models.ReportTypeLost,
	}
	s.fill(resp)
	return resp
}

func (s *ItemService) foundToResponse(item *models.FoundItem) *ItemResponse {
	resp := &ItemResponse{
		ItemID:          item.ID,
		Status:          item.Status,
		CreatedAt:       item.CreatedAt,
		PostedByStaffID: item.PostedByStaffID,
		ReportID:        item.SubmittedReportID,
		Type:            models.ReportTypeFound,
	}
	s.fill(resp)
	return resp
}

// fill copies the listing's descriptive fields from its source report and
// resolves the posting staff name.
func (s *ItemService) fill(resp *ItemResponse) {
	if report, err := s.store.GetReportByID(resp.ReportID); err == nil && report != nil {
		resp.Category = report.Category
		resp.ItemName = report.ItemName
		resp.Description = report.Description
		resp.Location = report.Location
		resp.DateOfEvent = report.DateOfEvent
		if len(report.PhotoURLs) > 0 {
			resp.PhotoURL = report.PhotoURLs[0]
		}
	}
	if staff, err := s.store.GetStaffByID(resp.PostedByStaffID); err == nil && staff != nil {
		resp.PostedByStaffName = staff.Name
	}
}
