package ports

import (
	"context"

	"courier-ledger/internal/ledger-service/core/domain/model"
)

type ILedgerService interface {
	SetZoneRate(ctx context.Context, caller string, zoneId, rate uint64) error
	GetRate(zoneId uint64) uint64

	RegisterDriver(ctx context.Context, caller, driverId, externalId string, zoneId uint64) error
	UpdateDriverStatus(ctx context.Context, caller, driverId string, isActive bool) error
	DeRegisterDriver(ctx context.Context, caller, driverId string) error
	UpdateDriverZone(ctx context.Context, caller, driverId string, zoneId uint64) error
	SetDriverBonus(ctx context.Context, caller, driverId string, bonus uint64) error

	RegisterCustomer(ctx context.Context, caller, customerId, externalId string) error

	ConfirmOrderAndRate(ctx context.Context, caller, customerId, driverId string, rating, tip uint64) (model.Settlement, error)
	GetAverageRating(driverId string) (uint64, error)
	GetDriver(driverId string) (model.Driver, bool)
}
