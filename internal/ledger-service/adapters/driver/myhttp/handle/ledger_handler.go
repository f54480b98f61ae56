package handle

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"courier-ledger/internal/ledger-service/core/domain/dto"
	"courier-ledger/internal/ledger-service/core/ports"
	"courier-ledger/internal/mylogger"
)

type LedgerHandler struct {
	ledgerService ports.ILedgerService
	archive       ports.IEventArchive
	log           mylogger.Logger
}

func NewLedgerHandler(ls ports.ILedgerService, archive ports.IEventArchive, log mylogger.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ls,
		archive:       archive,
		log:           log,
	}
}

// caller resolves the principal the auth middleware attached.
func caller(r *http.Request) string {
	return r.Header.Get("X-AccountId")
}

func parseZoneId(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("zone_id"), 10, 64)
}

func (lh *LedgerHandler) SetZoneRate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneId, err := parseZoneId(r)
		if err != nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("invalid zone id"))
			return
		}

		req := dto.SetZoneRateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.Rate == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("rate is required"))
			return
		}

		if err := lh.ledgerService.SetZoneRate(r.Context(), caller(r), zoneId, *req.Rate); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.ZoneRateResponse{ZoneId: zoneId, Rate: *req.Rate})
	}
}

func (lh *LedgerHandler) GetRate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoneId, err := parseZoneId(r)
		if err != nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("invalid zone id"))
			return
		}

		rate := lh.ledgerService.GetRate(zoneId)
		jsonResponse(w, http.StatusOK, dto.ZoneRateResponse{ZoneId: zoneId, Rate: rate})
	}
}

func (lh *LedgerHandler) RegisterDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.RegisterDriverRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.AccountId == nil || req.ExternalId == nil || req.ZoneId == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("account_id, external_id and zone_id are required"))
			return
		}

		if err := lh.ledgerService.RegisterDriver(r.Context(), caller(r), *req.AccountId, *req.ExternalId, *req.ZoneId); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusCreated, lh.driverResponse(*req.AccountId))
	}
}

func (lh *LedgerHandler) UpdateDriverStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		req := dto.UpdateDriverStatusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.IsActive == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("is_active is required"))
			return
		}

		if err := lh.ledgerService.UpdateDriverStatus(r.Context(), caller(r), driverId, *req.IsActive); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, lh.driverResponse(driverId))
	}
}

func (lh *LedgerHandler) DeRegisterDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		if err := lh.ledgerService.DeRegisterDriver(r.Context(), caller(r), driverId); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusNoContent, nil)
	}
}

func (lh *LedgerHandler) UpdateDriverZone() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		req := dto.UpdateDriverZoneRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.ZoneId == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("zone_id is required"))
			return
		}

		if err := lh.ledgerService.UpdateDriverZone(r.Context(), caller(r), driverId, *req.ZoneId); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, lh.driverResponse(driverId))
	}
}

func (lh *LedgerHandler) SetDriverBonus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		req := dto.SetDriverBonusRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.Bonus == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("bonus is required"))
			return
		}

		if err := lh.ledgerService.SetDriverBonus(r.Context(), caller(r), driverId, *req.Bonus); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, lh.driverResponse(driverId))
	}
}

func (lh *LedgerHandler) GetAverageRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		avg, err := lh.ledgerService.GetAverageRating(driverId)
		if err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.AverageRatingResponse{DriverId: driverId, AverageRating: avg})
	}
}

func (lh *LedgerHandler) RegisterCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.RegisterCustomerRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.AccountId == nil || req.ExternalId == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("account_id and external_id are required"))
			return
		}

		if err := lh.ledgerService.RegisterCustomer(r.Context(), caller(r), *req.AccountId, *req.ExternalId); err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusCreated, req)
	}
}

func (lh *LedgerHandler) ConfirmOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.ConfirmOrderRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			JsonError(w, http.StatusBadRequest, err)
			return
		}
		if req.CustomerId == nil || req.DriverId == nil || req.Rating == nil {
			JsonError(w, http.StatusBadRequest, fmt.Errorf("customer_id, driver_id and rating are required"))
			return
		}
		var tip uint64
		if req.Tip != nil {
			tip = *req.Tip
		}

		settlement, err := lh.ledgerService.ConfirmOrderAndRate(r.Context(), caller(r), *req.CustomerId, *req.DriverId, *req.Rating, tip)
		if err != nil {
			JsonError(w, statusFor(err), err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.ConfirmOrderResponse{
			CustomerId:     settlement.CustomerId,
			DriverId:       settlement.DriverId,
			StandardPayout: settlement.StandardPayout,
			Bonus:          settlement.Bonus,
			Tip:            settlement.Tip,
			Total:          settlement.Total,
		})
	}
}

func (lh *LedgerHandler) ListDriverEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverId := r.PathValue("driver_id")

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		events, err := lh.archive.ListBySubject(r.Context(), driverId, limit)
		if err != nil {
			lh.log.Action("ListDriverEvents").Error("failed to read archive", err)
			JsonError(w, http.StatusInternalServerError, fmt.Errorf("internal error, please try again later"))
			return
		}

		jsonResponse(w, http.StatusOK, events)
	}
}

func (lh *LedgerHandler) driverResponse(driverId string) dto.DriverResponse {
	d, ok := lh.ledgerService.GetDriver(driverId)
	return dto.DriverResponse{
		AccountId:      d.AccountId,
		ExternalId:     d.DriverExternalId,
		IsRegistered:   ok,
		IsActive:       d.IsActive,
		ZoneId:         d.ZoneId,
		StandardPayout: d.StandardPayout,
		Bonus:          d.Bonus,
	}
}
