// Package permission defines the Permission entity, the permission Set, and
// the static module/action authorization tables.
package permission

// Permission is a single granted capability: a machine-readable code name
// (the authorization key, e.g. "view_user") plus a human-readable label.
type Permission struct {
	CodeName    string `json:"code_name"`
	DisplayName string `json:"display_name,omitempty"`
}

// Matches reports whether the permission grants the given code. Both the
// code name and the display label are checked: historical callers pass the
// two forms interchangeably, so the dual match is load-bearing even though
// a label could in principle collide with an unrelated code.
func (p Permission) Matches(code string) bool {
	return p.CodeName == code || p.DisplayName == code
}

// Set is the effective permission set of one identity. It is replaced
// wholesale on refetch, never mutated in place.
type Set []Permission

// Contains reports whether any permission in the set matches the code.
func (s Set) Contains(code string) bool {
	for _, p := range s {
		if p.Matches(code) {
			return true
		}
	}
	return false
}

// Codes returns the code names of all permissions in the set.
func (s Set) Codes() []string {
	codes := make([]string, 0, len(s))
	for _, p := range s {
		codes = append(codes, p.CodeName)
	}
	return codes
}
