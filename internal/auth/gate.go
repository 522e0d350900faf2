package auth

import "context"

// Capability is a named permission checked against a caller.
type Capability string

const (
	CapCreateReservation Capability = "reservation:create"
	CapDeleteReservation Capability = "reservation:delete"
	CapManageClassrooms  Capability = "classroom:manage"
)

// Gate answers whether a caller may exercise a capability. Services treat it
// as an opaque boolean oracle; ownership checks stay with the services.
type Gate interface {
	Authorize(ctx context.Context, callerID string, cap Capability) bool
}

// CallerInfo is the minimal account state the gate needs.
type CallerInfo struct {
	Active bool
	Admin  bool
}

// CallerResolver looks up a caller's account state. Implemented by the user
// service so the gate does not depend on the user package.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, callerID string) (CallerInfo, error)
}

// RoleGate grants capabilities from the caller's role: every active user may
// create and delete reservations (deletion of foreign reservations is refused
// by the scheduler), admins additionally manage classrooms.
type RoleGate struct {
	resolver CallerResolver
}

// NewRoleGate creates a Gate backed by the given resolver.
func NewRoleGate(resolver CallerResolver) *RoleGate {
	return &RoleGate{resolver: resolver}
}

func (g *RoleGate) Authorize(ctx context.Context, callerID string, cap Capability) bool {
	if callerID == "" {
		return false
	}

	info, err := g.resolver.ResolveCaller(ctx, callerID)
	if err != nil || !info.Active {
		return false
	}

	switch cap {
	case CapCreateReservation, CapDeleteReservation:
		return true
	case CapManageClassrooms:
		return info.Admin
	default:
		return false
	}
}
