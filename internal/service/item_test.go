package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/service"
)

func TestListLostFillsFromReport(t *testing.T) {
	store := new(MockStorage)
	svc := service.NewItemService(store)

	store.On("ListLostItemsByStatus", models.ItemStatusActive).Return([]models.LostItem{
		{ID: 5, Status: models.ItemStatusActive, SubmittedReportID: 3, PostedByStaffID: 2},
	}, nil)
	store.On("GetReportByID", uint(3)).Return(&models.SubmittedReport{
		ID:          3,
		Type:        models.ReportTypeLost,
		Category:    "electronics",
		ItemName:    "phone",
		Description: "black phone",
		Location:    "library",
		DateOfEvent: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		PhotoURLs:   []string{"http://img/1.jpg", "http://img/2.jpg"},
	}, nil)
	store.On("GetStaffByID", uint(2)).Return(&models.Staff{ID: 2, Name: "Bob"}, nil)

	items, err := svc.ListLost(models.ItemStatusActive)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "phone", items[0].ItemName)
	assert.Equal(t, "http://img/1.jpg", items[0].PhotoURL)
	assert.Equal(t, "Bob", items[0].PostedByStaffName)
	assert.Equal(t, models.ReportTypeLost, items[0].Type)
}

func TestUpdateLostStatusValidation(t *testing.T) {
	store := new(MockStorage)
	svc := service.NewItemService(store)

	_, err := svc.UpdateLostStatus(5, "vanished")

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	store.AssertNotCalled(t, "SaveLostItem", mock.Anything)
}

func TestUpdateFoundStatus(t *testing.T) {
	store := new(MockStorage)
	svc := service.NewItemService(store)

	item := &models.FoundItem{ID: 5, Status: models.ItemStatusActive, SubmittedReportID: 3, PostedByStaffID: 2}
	store.On("GetFoundItemByID", uint(5)).Return(item, nil)
	store.On("SaveFoundItem", item).Return(nil)
	store.On("GetReportByID", uint(3)).Return(nil, nil)
	store.On("GetStaffByID", uint(2)).Return(nil, nil)

	resp, err := svc.UpdateFoundStatus(5, "ARCHIVED")

	assert.NoError(t, err)
	assert.Equal(t, models.ItemStatusArchived, resp.Status)
}

func TestGetLostMissing(t *testing.T) {
	store := new(MockStorage)
	svc := service.NewItemService(store)

	store.On("GetLostItemByID", uint(99)).Return(nil, nil)

	_, err := svc.GetLost(99)

	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
