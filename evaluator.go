package gatehouse

import "github.com/xraph/gatehouse/permission"

// IdentitySource reports whether an identity is live. The Session satisfies
// it.
type IdentitySource interface {
	IsAuthenticated() bool
}

// PermissionSource returns the current permission set. The PermissionCache
// satisfies it.
type PermissionSource interface {
	Permissions() permission.Set
}

// Evaluator answers allow/deny questions over the cached permission set and
// the static module/action tables. It is pure and synchronous: no I/O, no
// side effects, and every question resolves to false when unauthenticated,
// when the set is empty, or when a module or action is unknown. An
// unrecognized request must never default to allow.
type Evaluator struct {
	ids   IdentitySource
	perms PermissionSource
}

var (
	_ IdentitySource   = (*Session)(nil)
	_ PermissionSource = (*PermissionCache)(nil)
)

// NewEvaluator creates an evaluator over the given sources.
func NewEvaluator(ids IdentitySource, perms PermissionSource) *Evaluator {
	return &Evaluator{ids: ids, perms: perms}
}

// set returns the current permission set, or false when unauthenticated.
func (e *Evaluator) set() (permission.Set, bool) {
	if !e.ids.IsAuthenticated() {
		return nil, false
	}
	return e.perms.Permissions(), true
}

// HasPermission reports whether the set grants the given code. Both the
// code name and the display label are matched.
func (e *Evaluator) HasPermission(code string) bool {
	set, ok := e.set()
	return ok && set.Contains(code)
}

// HasAnyPermission reports whether the set grants at least one of the
// codes. An empty code list is false.
func (e *Evaluator) HasAnyPermission(codes ...string) bool {
	set, ok := e.set()
	if !ok {
		return false
	}
	for _, code := range codes {
		if set.Contains(code) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the set grants every code. An empty
// code list is false, not vacuously true.
func (e *Evaluator) HasAllPermissions(codes ...string) bool {
	set, ok := e.set()
	if !ok || len(codes) == 0 {
		return false
	}
	for _, code := range codes {
		if !set.Contains(code) {
			return false
		}
	}
	return true
}

// CanAccessModule reports whether the set grants read access to the module.
// Unknown modules have an empty required list and resolve to false.
func (e *Evaluator) CanAccessModule(module string) bool {
	return e.HasAnyPermission(permission.ModuleReadCodes(module)...)
}

// CanPerformAction reports whether the set grants the exact permission the
// static table requires for (module, action). Unmapped pairs are false.
func (e *Evaluator) CanPerformAction(module string, action permission.Action) bool {
	code, ok := permission.ActionCode(module, action)
	if !ok {
		return false
	}
	return e.HasPermission(code)
}
