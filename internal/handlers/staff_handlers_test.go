package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant_ops_backend/internal/models"
	"restaurant_ops_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type fakeStaffService struct {
	services.StaffService
	finalized *models.LaborCost
	err       error
}

func (f *fakeStaffService) FinalizeLaborCost(shiftID int64) (*models.LaborCost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.finalized, nil
}

func finalizeRequest(t *testing.T, svc services.StaffService, shiftID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStaffHandler(svc)
	r.POST("/shifts/:id/finalize", h.FinalizeShift)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/shifts/"+shiftID+"/finalize", nil))
	return w
}

func TestFinalizeShift(t *testing.T) {
	lc := &models.LaborCost{ID: 4, StaffID: 2, WorkDate: "2025-03-10", TotalCompensation: 220}
	w := finalizeRequest(t, &fakeStaffService{finalized: lc}, "9")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var got models.LaborCost
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.TotalCompensation != 220 {
		t.Errorf("expected compensation 220, got %v", got.TotalCompensation)
	}
}

func TestFinalizeShiftNotClosed(t *testing.T) {
	w := finalizeRequest(t, &fakeStaffService{err: services.ErrTimeLogNotClosed}, "9")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestFinalizeShiftBadID(t *testing.T) {
	w := finalizeRequest(t, &fakeStaffService{}, "not-a-number")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
