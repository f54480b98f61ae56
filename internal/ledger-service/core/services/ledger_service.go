package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"courier-ledger/internal/ledger-service/core/domain/model"
	"courier-ledger/internal/ledger-service/core/myerrors"
	"courier-ledger/internal/ledger-service/core/ports"
	"courier-ledger/internal/mylogger"
)

const (
	MinRating = 1
	MaxRating = 5

	// average rating is scaled by this and truncated (4.5 -> 450)
	RatingScale = 100
)

// LedgerService owns the three state stores. Every mutating operation runs
// under the write lock from first precondition check to commit, so a failed
// check leaves the stores untouched and two mutations never interleave.
// Events are recorded after the transition commits; the hosting process
// serializes calls, which keeps the stream in commit order.
type LedgerService struct {
	mylog mylogger.Logger
	guard ports.IAuthGuard
	sink  ports.IEventSink

	mu        sync.RWMutex
	zoneRates map[uint64]uint64
	drivers   map[string]*model.Driver
	customers map[string]*model.Customer
}

func NewLedgerService(mylog mylogger.Logger, guard ports.IAuthGuard, sink ports.IEventSink) *LedgerService {
	return &LedgerService{
		mylog:     mylog,
		guard:     guard,
		sink:      sink,
		zoneRates: make(map[uint64]uint64),
		drivers:   make(map[string]*model.Driver),
		customers: make(map[string]*model.Customer),
	}
}

// ======================= Zone rate table =======================

func (ls *LedgerService) SetZoneRate(ctx context.Context, caller string, zoneId, rate uint64) error {
	log := ls.mylog.Action("SetZoneRate")

	if err := ls.guard.Require(caller, ports.RoleDriverAdmin); err != nil {
		return err
	}
	if rate == 0 {
		return myerrors.ErrInvalidRate
	}

	ls.mu.Lock()
	ls.zoneRates[zoneId] = rate
	ls.mu.Unlock()

	log.Info("zone rate updated", "zone_id", zoneId, "rate", rate)
	ls.emit(ctx, model.Event{
		Kind:    model.EventZoneRateUpdated,
		Subject: zoneSubject(zoneId),
		Data:    model.ZoneRateUpdated{ZoneId: zoneId, Rate: rate},
	})
	return nil
}

// GetRate is a pure lookup; absent zones read as zero.
func (ls *LedgerService) GetRate(zoneId uint64) uint64 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.zoneRates[zoneId]
}

// ======================= Driver registry =======================

func (ls *LedgerService) RegisterDriver(ctx context.Context, caller, driverId, externalId string, zoneId uint64) error {
	log := ls.mylog.Action("RegisterDriver")

	if err := ls.guard.Require(caller, ports.RoleDriverAdmin); err != nil {
		return err
	}

	ls.mu.Lock()
	if _, ok := ls.drivers[driverId]; ok {
		ls.mu.Unlock()
		return myerrors.ErrAlreadyRegistered
	}
	rate := ls.zoneRates[zoneId]
	if rate == 0 {
		ls.mu.Unlock()
		return myerrors.ErrInvalidZone
	}
	ls.drivers[driverId] = &model.Driver{
		AccountId:        driverId,
		DriverExternalId: externalId,
		IsActive:         true,
		StandardPayout:   rate,
		ZoneId:           zoneId,
	}
	ls.mu.Unlock()

	log.Info("driver registered", "driver_id", driverId, "zone_id", zoneId, "standard_payout", rate)
	ls.emit(ctx, model.Event{
		Kind:    model.EventDriverRegistered,
		Subject: driverId,
		Data: model.DriverRegistered{
			AccountId:        driverId,
			DriverExternalId: externalId,
			ZoneId:           zoneId,
			StandardPayout:   rate,
		},
	})
	return nil
}

func (ls *LedgerService) UpdateDriverStatus(ctx context.Context, caller, driverId string, isActive bool) error {
	log := ls.mylog.Action("UpdateDriverStatus")

	if err := ls.guard.Require(caller, ports.RoleDriverAdmin); err != nil {
		return err
	}

	ls.mu.Lock()
	d, ok := ls.drivers[driverId]
	if !ok {
		ls.mu.Unlock()
		return myerrors.ErrNotRegistered
	}
	d.IsActive = isActive
	ls.mu.Unlock()

	log.Info("driver status updated", "driver_id", driverId, "is_active", isActive)
	ls.emit(ctx, model.Event{
		Kind:    model.EventDriverStatusUpdated,
		Subject: driverId,
		Data:    model.DriverStatusUpdated{AccountId: driverId, IsActive: isActive},
	})
	return nil
}

func (ls *LedgerService) DeRegisterDriver(ctx context.Context, caller, driverId string) error {
	log := ls.mylog.Action("DeRegisterDriver")

	if err := ls.guard.Require(caller, ports.RoleDriverAdmin); err != nil {
		return err
	}

	ls.mu.Lock()
	d, ok := ls.drivers[driverId]
	if !ok {
		ls.mu.Unlock()
		return myerrors.ErrNotRegistered
	}
	if d.IsActive {
		ls.mu.Unlock()
		return myerrors.ErrMustBeInactive
	}
	// destructive and irreversible: a later registration starts from zero
	delete(ls.drivers, driverId)
	ls.mu.Unlock()

	log.Info("driver de-registered", "driver_id", driverId)
	ls.emit(ctx, model.Event{
		Kind:    model.EventDriverDeRegistered,
		Subject: driverId,
		Data:    model.DriverDeRegistered{AccountId: driverId},
	})
	return nil
}

func (ls *LedgerService) UpdateDriverZone(ctx context.Context, caller, driverId string, zoneId uint64) error {
	log := ls.mylog.Action("UpdateDriverZone")

	if err := ls.guard.Require(caller, ports.RoleDriverAdmin); err != nil {
		return err
	}

	ls.mu.Lock()
	d, ok := ls.drivers[driverId]
	if !ok {
		ls.mu.Unlock()
		return myerrors.ErrNotRegistered
	}
	rate := ls.zoneRates[zoneId]
	if rate == 0 {
		ls.mu.Unlock()
		return myerrors.ErrInvalidZone
	}
	// re-snapshot; past settlements keep the payout they were computed with
	d.ZoneId = zoneId
	d.StandardPayout = rate
	ls.mu.Unlock()

	log.Info("driver zone updated", "driver_id", driverId, "zone_id", zoneId, "standard_payout", rate)
	ls.emit(ctx, model.Event{
		Kind:    model.EventDriverZoneUpdated,
		Subject: driverId,
		Data:    model.DriverZoneUpdated{AccountId: driverId, ZoneId: zoneId, StandardPayout: rate},
	})
	return nil
}

func (ls *LedgerService) SetDriverBonus(ctx context.Context, caller, driverId string, bonus uint64) error {
	log := ls.mylog.Action("SetDriverBonus")

	if err := ls.guard.Require(caller, ports.RoleDriverAdmin); err != nil {
		return err
	}

	ls.mu.Lock()
	d, ok := ls.drivers[driverId]
	if !ok {
		ls.mu.Unlock()
		return myerrors.ErrNotRegistered
	}
	d.Bonus = bonus
	standard := d.StandardPayout
	ls.mu.Unlock()

	log.Info("driver bonus updated", "driver_id", driverId, "bonus", bonus)
	ls.emit(ctx, model.Event{
		Kind:    model.EventPayoutUpdated,
		Subject: driverId,
		Data:    model.PayoutUpdated{AccountId: driverId, StandardPayout: standard, Bonus: bonus},
	})
	return nil
}

// ======================= Customer registry =======================

func (ls *LedgerService) RegisterCustomer(ctx context.Context, caller, customerId, externalId string) error {
	log := ls.mylog.Action("RegisterCustomer")

	if err := ls.guard.Require(caller, ports.RoleOwnerOrDriverAdmin); err != nil {
		return err
	}

	ls.mu.Lock()
	if _, ok := ls.customers[customerId]; ok {
		ls.mu.Unlock()
		return myerrors.ErrAlreadyRegistered
	}
	ls.customers[customerId] = &model.Customer{
		AccountId:          customerId,
		CustomerExternalId: externalId,
	}
	ls.mu.Unlock()

	log.Info("customer registered", "customer_id", customerId)
	ls.emit(ctx, model.Event{
		Kind:    model.EventCustomerRegistered,
		Subject: customerId,
		Data:    model.CustomerRegistered{AccountId: customerId, CustomerExternalId: externalId},
	})
	return nil
}

// ======================= Order settlement =======================

// ConfirmOrderAndRate is callable by any principal; the gateway is expected
// to restrict it to the transacting parties. Preconditions run in order and
// any failure aborts the whole call with no state change.
func (ls *LedgerService) ConfirmOrderAndRate(ctx context.Context, caller, customerId, driverId string, rating, tip uint64) (model.Settlement, error) {
	log := ls.mylog.Action("ConfirmOrderAndRate")

	ls.mu.Lock()
	if _, ok := ls.customers[customerId]; !ok {
		ls.mu.Unlock()
		return model.Settlement{}, myerrors.ErrNotRegistered
	}
	d, ok := ls.drivers[driverId]
	if !ok {
		ls.mu.Unlock()
		return model.Settlement{}, myerrors.ErrNotRegistered
	}
	if !d.IsActive {
		ls.mu.Unlock()
		return model.Settlement{}, myerrors.ErrDriverInactive
	}
	if rating < MinRating || rating > MaxRating {
		ls.mu.Unlock()
		return model.Settlement{}, myerrors.ErrInvalidRating
	}

	d.TotalRatingPoints += rating
	d.RatingCount++

	settlement := model.Settlement{
		CustomerId:     customerId,
		DriverId:       driverId,
		StandardPayout: d.StandardPayout,
		Bonus:          d.Bonus,
		Tip:            tip,
		Total:          d.StandardPayout + d.Bonus + tip,
		Rating:         rating,
	}
	points := d.TotalRatingPoints
	count := d.RatingCount
	ls.mu.Unlock()

	log.Info("order confirmed",
		"customer_id", customerId,
		"driver_id", driverId,
		"total", settlement.Total,
		"rating", rating,
	)
	ls.emit(ctx, model.Event{
		Kind:    model.EventOrderConfirmed,
		Subject: driverId,
		Data: model.OrderConfirmed{
			CustomerId:     customerId,
			DriverId:       driverId,
			StandardPayout: settlement.StandardPayout,
			Bonus:          settlement.Bonus,
			Tip:            tip,
			Total:          settlement.Total,
			Rating:         rating,
		},
	})
	ls.emit(ctx, model.Event{
		Kind:    model.EventRatingUpdated,
		Subject: driverId,
		Data: model.RatingUpdated{
			AccountId:         driverId,
			TotalRatingPoints: points,
			RatingCount:       count,
			AverageRating:     scaledAverage(points, count),
		},
	})
	return settlement, nil
}

// GetAverageRating returns the driver's average rating scaled by 100 and
// truncated: a true average of 4.5 reads as 450, 4.567 as 456. Zero ratings
// read as 0.
func (ls *LedgerService) GetAverageRating(driverId string) (uint64, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	d, ok := ls.drivers[driverId]
	if !ok {
		return 0, myerrors.ErrNotRegistered
	}
	return scaledAverage(d.TotalRatingPoints, d.RatingCount), nil
}

// GetDriver returns a copy of the record; the bool mirrors isRegistered.
func (ls *LedgerService) GetDriver(driverId string) (model.Driver, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	d, ok := ls.drivers[driverId]
	if !ok {
		return model.Driver{}, false
	}
	return *d, true
}

func scaledAverage(points, count uint64) uint64 {
	if count == 0 {
		return 0
	}
	return points * RatingScale / count
}

func zoneSubject(zoneId uint64) string {
	return "zone_" + strconv.FormatUint(zoneId, 10)
}

// emit records one notification. The transition already committed, so a sink
// failure is logged and swallowed rather than surfaced to the caller.
func (ls *LedgerService) emit(ctx context.Context, event model.Event) {
	event.EmittedAt = time.Now().UTC()
	if err := ls.sink.Record(ctx, event); err != nil {
		ls.mylog.Action("emit").Error("failed to record event", err, "kind", event.Kind, "subject", event.Subject)
	}
}
