package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func windowTestContext(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c, w
}

func TestWindowParamsStartOnly(t *testing.T) {
	c, w := windowTestContext(t, "start_date=2025-03-01")
	start, end, ok := windowParams(c)
	if !ok {
		t.Fatalf("expected start_date alone to be accepted, got %d: %s", w.Code, w.Body.String())
	}
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("expected start %v, got %v", want, start)
	}
	// Open end runs through the end of today.
	if !end.After(time.Now().UTC()) {
		t.Errorf("expected open end after now, got %v", end)
	}
}

func TestWindowParamsEndOnly(t *testing.T) {
	c, w := windowTestContext(t, "end_date=2025-03-05")
	start, end, ok := windowParams(c)
	if !ok {
		t.Fatalf("expected end_date alone to be accepted, got %d: %s", w.Code, w.Body.String())
	}
	// end_date is inclusive, so the boundary is the next midnight.
	if want := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("expected end %v, got %v", want, end)
	}
	if want := end.AddDate(0, 0, -defaultWindowDays); !start.Equal(want) {
		t.Errorf("expected defaulted start %v, got %v", want, start)
	}
}

func TestWindowParamsInverted(t *testing.T) {
	c, w := windowTestContext(t, "start_date=2025-03-10&end_date=2025-03-01")
	_, _, ok := windowParams(c)
	if ok {
		t.Fatal("expected inverted range to be rejected")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLimitParamDefault(t *testing.T) {
	c, _ := windowTestContext(t, "")
	limit, ok := limitParam(c, defaultRankLimit)
	if !ok || limit != defaultRankLimit {
		t.Errorf("expected default limit %d, got %d (ok=%v)", defaultRankLimit, limit, ok)
	}
}
