package services

import (
	"courier-ledger/internal/config"
	"courier-ledger/internal/ledger-service/core/myerrors"
	"courier-ledger/internal/ledger-service/core/ports"
)

// AuthGuard holds the two privileged identifiers, fixed at startup. The same
// account may hold both.
type AuthGuard struct {
	ownerId       string
	driverAdminId string
}

func NewAuthGuard(cfg *config.Appconfig) ports.IAuthGuard {
	return &AuthGuard{
		ownerId:       cfg.OwnerId,
		driverAdminId: cfg.DriverAdminId,
	}
}

func (g *AuthGuard) Require(principal string, role ports.Role) error {
	switch role {
	case ports.RoleOwner:
		if principal == g.ownerId {
			return nil
		}
	case ports.RoleDriverAdmin:
		if principal == g.driverAdminId {
			return nil
		}
	case ports.RoleOwnerOrDriverAdmin:
		if principal == g.ownerId || principal == g.driverAdminId {
			return nil
		}
	}
	return myerrors.ErrUnauthorized
}
