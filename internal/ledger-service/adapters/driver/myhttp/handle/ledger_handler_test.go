package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courier-ledger/internal/config"
	"courier-ledger/internal/ledger-service/core/domain/dto"
	"courier-ledger/internal/ledger-service/core/domain/model"
	"courier-ledger/internal/ledger-service/core/services"
	"courier-ledger/internal/mylogger"
)

const (
	adminId = "acc_admin"
	ownerId = "acc_owner"
)

type nopSink struct{}

func (nopSink) Record(ctx context.Context, event model.Event) error { return nil }

type fakeArchive struct {
	events []model.StoredEvent
}

func (f *fakeArchive) Append(ctx context.Context, event model.Event) error { return nil }

func (f *fakeArchive) ListBySubject(ctx context.Context, subject string, limit int) ([]model.StoredEvent, error) {
	return f.events, nil
}

func newTestHandler() *LedgerHandler {
	guard := services.NewAuthGuard(&config.Appconfig{OwnerId: ownerId, DriverAdminId: adminId})
	ls := services.NewLedgerService(mylogger.NewNop(), guard, nopSink{})
	return NewLedgerHandler(ls, &fakeArchive{}, mylogger.NewNop())
}

func doJSON(t *testing.T, h http.HandlerFunc, method, body, caller string, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, "/", strings.NewReader(body))
	if caller != "" {
		r.Header.Set("X-AccountId", caller)
	}
	for k, v := range pathValues {
		r.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestSetZoneRateHandler(t *testing.T) {
	h := newTestHandler()
	zone := map[string]string{"zone_id": "1"}

	tests := []struct {
		name     string
		body     string
		caller   string
		wantCode int
	}{
		{"ok", `{"rate":100}`, adminId, http.StatusOK},
		{"unauthorized caller", `{"rate":100}`, ownerId, http.StatusForbidden},
		{"zero rate", `{"rate":0}`, adminId, http.StatusUnprocessableEntity},
		{"missing rate", `{}`, adminId, http.StatusBadRequest},
		{"garbage body", `{"rate":`, adminId, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, h.SetZoneRate(), "POST", tc.body, tc.caller, zone)
			if w.Code != tc.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}

	t.Run("bad zone id", func(t *testing.T) {
		w := doJSON(t, h.SetZoneRate(), "POST", `{"rate":100}`, adminId, map[string]string{"zone_id": "abc"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestRegisterDriverHandler(t *testing.T) {
	h := newTestHandler()

	// zone not set yet
	w := doJSON(t, h.RegisterDriver(), "POST", `{"account_id":"d1","external_id":"ext","zone_id":1}`, adminId, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unset zone: status = %d, want 422", w.Code)
	}

	doJSON(t, h.SetZoneRate(), "POST", `{"rate":100}`, adminId, map[string]string{"zone_id": "1"})

	w = doJSON(t, h.RegisterDriver(), "POST", `{"account_id":"d1","external_id":"ext","zone_id":1}`, adminId, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	var res dto.DriverResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.IsRegistered || !res.IsActive || res.StandardPayout != 100 {
		t.Errorf("response = %+v", res)
	}

	// duplicate
	w = doJSON(t, h.RegisterDriver(), "POST", `{"account_id":"d1","external_id":"ext","zone_id":1}`, adminId, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", w.Code)
	}
}

func TestConfirmOrderHandler(t *testing.T) {
	h := newTestHandler()

	doJSON(t, h.SetZoneRate(), "POST", `{"rate":100}`, adminId, map[string]string{"zone_id": "1"})
	doJSON(t, h.RegisterDriver(), "POST", `{"account_id":"d1","external_id":"ext","zone_id":1}`, adminId, nil)
	doJSON(t, h.SetDriverBonus(), "PATCH", `{"bonus":20}`, adminId, map[string]string{"driver_id": "d1"})
	doJSON(t, h.RegisterCustomer(), "POST", `{"account_id":"c1","external_id":"ext"}`, adminId, nil)

	w := doJSON(t, h.ConfirmOrder(), "POST", `{"customer_id":"c1","driver_id":"d1","rating":4,"tip":5}`, "c1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var res dto.ConfirmOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 125 {
		t.Errorf("Total = %d, want 125", res.Total)
	}

	w = doJSON(t, h.GetAverageRating(), "GET", "", "", map[string]string{"driver_id": "d1"})
	if w.Code != http.StatusOK {
		t.Fatalf("rating status = %d", w.Code)
	}
	var avg dto.AverageRatingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &avg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if avg.AverageRating != 400 {
		t.Errorf("average = %d, want 400", avg.AverageRating)
	}

	// out-of-range rating
	w = doJSON(t, h.ConfirmOrder(), "POST", `{"customer_id":"c1","driver_id":"d1","rating":6}`, "c1", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad rating: status = %d, want 422", w.Code)
	}
}

func TestGetAverageRatingUnknownDriver(t *testing.T) {
	h := newTestHandler()
	w := doJSON(t, h.GetAverageRating(), "GET", "", "", map[string]string{"driver_id": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeRegisterDriverHandler(t *testing.T) {
	h := newTestHandler()

	doJSON(t, h.SetZoneRate(), "POST", `{"rate":100}`, adminId, map[string]string{"zone_id": "1"})
	doJSON(t, h.RegisterDriver(), "POST", `{"account_id":"d1","external_id":"ext","zone_id":1}`, adminId, nil)

	pv := map[string]string{"driver_id": "d1"}

	w := doJSON(t, h.DeRegisterDriver(), "DELETE", "", adminId, pv)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("active driver: status = %d, want 422", w.Code)
	}

	doJSON(t, h.UpdateDriverStatus(), "PATCH", `{"is_active":false}`, adminId, pv)

	w = doJSON(t, h.DeRegisterDriver(), "DELETE", "", adminId, pv)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
