package ports

type Role string

const (
	RoleOwner              Role = "OWNER"
	RoleDriverAdmin        Role = "DRIVER_ADMIN"
	RoleOwnerOrDriverAdmin Role = "OWNER_OR_DRIVER_ADMIN"
)

// IAuthGuard resolves the calling principal against the two fixed privileged
// identifiers. Require succeeds silently or fails with ErrUnauthorized; it
// has no side effects.
type IAuthGuard interface {
	Require(principal string, role Role) error
}
