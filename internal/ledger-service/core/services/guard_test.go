package services

import (
	"errors"
	"testing"

	"courier-ledger/internal/config"
	"courier-ledger/internal/ledger-service/core/myerrors"
	"courier-ledger/internal/ledger-service/core/ports"
)

func TestAuthGuardRequire(t *testing.T) {
	guard := NewAuthGuard(&config.Appconfig{OwnerId: owner, DriverAdminId: admin})

	tests := []struct {
		name      string
		principal string
		role      ports.Role
		wantOk    bool
	}{
		{"owner as owner", owner, ports.RoleOwner, true},
		{"admin as owner", admin, ports.RoleOwner, false},
		{"admin as driver-admin", admin, ports.RoleDriverAdmin, true},
		{"owner as driver-admin", owner, ports.RoleDriverAdmin, false},
		{"owner as either", owner, ports.RoleOwnerOrDriverAdmin, true},
		{"admin as either", admin, ports.RoleOwnerOrDriverAdmin, true},
		{"stranger as owner", nobody, ports.RoleOwner, false},
		{"stranger as driver-admin", nobody, ports.RoleDriverAdmin, false},
		{"stranger as either", nobody, ports.RoleOwnerOrDriverAdmin, false},
		{"empty principal", "", ports.RoleDriverAdmin, false},
		{"unknown role", admin, ports.Role("SUPERUSER"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := guard.Require(tc.principal, tc.role)
			if tc.wantOk && err != nil {
				t.Errorf("Require(%q, %q) = %v, want nil", tc.principal, tc.role, err)
			}
			if !tc.wantOk && !errors.Is(err, myerrors.ErrUnauthorized) {
				t.Errorf("Require(%q, %q) = %v, want ErrUnauthorized", tc.principal, tc.role, err)
			}
		})
	}
}

func TestAuthGuardSharedIdentifier(t *testing.T) {
	// owner and driver-admin may be the same account
	guard := NewAuthGuard(&config.Appconfig{OwnerId: "acc_boss", DriverAdminId: "acc_boss"})

	for _, role := range []ports.Role{ports.RoleOwner, ports.RoleDriverAdmin, ports.RoleOwnerOrDriverAdmin} {
		if err := guard.Require("acc_boss", role); err != nil {
			t.Errorf("shared identifier rejected for %q: %v", role, err)
		}
	}
}
