package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prusa_thermal/internal/models"
	"prusa_thermal/internal/service"
)

func TestEventsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.AccessoryEvent{
		{EventID: "e1", OccurredAt: now, Type: service.EventActive, Description: "Sensor became active"},
		{EventID: "e2", OccurredAt: now.Add(time.Second), Type: service.EventInactive, Description: "Sensor became inactive"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{Authorization: &mockAuth{parseID: 99}, EventLog: logs}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/events?from=notatime", nil), "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/events?type=overheat", nil), "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'type', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/events?from=2025-01-02&to=2025-01-01", nil), "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
	if logs.calls != 0 {
		t.Fatalf("invalid requests must not reach the event log, got %d calls", logs.calls)
	}

	w = httptest.NewRecorder()
	q := "/api/v1/events?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=inactive"
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, q, nil), "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                     `json:"count"`
		Events []models.AccessoryEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != service.EventInactive {
		t.Fatalf("expected lastType INACTIVE, got %q", logs.lastType)
	}
	if !logs.lastFrom.Equal(now) || !logs.lastTo.Equal(now.Add(2*time.Second)) {
		t.Fatalf("range: from=%v to=%v", logs.lastFrom, logs.lastTo)
	}
}

func TestEventsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, EventLog: logs}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/events?from=2025-08-01&to=2025-08-01", nil), "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	wantTo := time.Date(2025, 8, 1, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !logs.lastTo.Equal(wantTo) {
		t.Fatalf("to = %v, want %v", logs.lastTo, wantTo)
	}
}

func TestEventsHandler_ListError(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, EventLog: &mockEventLog{err: errors.New("db")}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/events", nil), "valid"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	want := time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC)
	for _, s := range []string{"2025-08-27T15:04:05Z", "2025-08-27T17:04:05+02:00", "2025-08-27 15:04:05"} {
		got, err := parseQueryTime(s)
		if err != nil || !got.Equal(want) {
			t.Errorf("parseQueryTime(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := parseQueryTime("27/08/2025"); err == nil {
		t.Errorf("expected error for unsupported layout")
	}
}

func TestEventsHandler_FilterRejectedByService(t *testing.T) {
	logs := &mockEventLog{err: fmt.Errorf("%w: got %q", service.ErrInvalidEventType, "X")}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, EventLog: logs}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withAuth(httptest.NewRequest(http.MethodGet, "/api/v1/events", nil), "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
