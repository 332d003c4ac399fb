package permission

// Action is one of the four CRUD actions used for per-entity gating.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// moduleReadCodes maps a module name to the permission codes that grant read
// access to it. The console's navigation depends on these exact strings.
// Missing modules (dashboard, roles) are deliberate: they are either always
// visible by caller-side rule or gated elsewhere.
var moduleReadCodes = map[string][]string{
	"users":       {"view_user"},
	"units":       {"view_unit"},
	"finance":     {"view_unitcharge", "view_payment", "view_feeconcept", "view_billingperiod"},
	"notices":     {"view_notice"},
	"security":    {"view_visitor", "view_accessauthorization", "view_accessevent"},
	"amenities":   {"view_amenity", "view_amenityreservation"},
	"maintenance": {"view_asset", "view_workorder", "view_preventiveplan"},
	"reports":     {"view_unitcharge", "view_payment", "view_notice", "view_visitor", "view_amenity", "view_workorder"},
}

// moduleEntities maps a module name to the entity used for its per-action
// permission codes (add_<entity>, view_<entity>, change_<entity>,
// delete_<entity>). Partial coverage is intentional.
var moduleEntities = map[string]string{
	"users":       "user",
	"units":       "unit",
	"finance":     "unitcharge",
	"notices":     "notice",
	"security":    "visitor",
	"amenities":   "amenity",
	"maintenance": "workorder",
}

var actionPrefixes = map[Action]string{
	ActionCreate: "add_",
	ActionRead:   "view_",
	ActionUpdate: "change_",
	ActionDelete: "delete_",
}

// ModuleReadCodes returns the permission codes granting read access to the
// module, or nil for an unknown module name. An empty required list always
// evaluates to deny.
func ModuleReadCodes(module string) []string {
	return moduleReadCodes[module]
}

// ActionCode returns the exact permission code required to perform the given
// action in the given module. ok is false when either the module or the
// action has no table entry; an unmapped request must resolve to deny, never
// to allow.
func ActionCode(module string, action Action) (string, bool) {
	entity, ok := moduleEntities[module]
	if !ok {
		return "", false
	}
	prefix, ok := actionPrefixes[action]
	if !ok {
		return "", false
	}
	return prefix + entity, true
}

// Modules returns the module names present in the read-access table.
func Modules() []string {
	names := make([]string, 0, len(moduleReadCodes))
	for name := range moduleReadCodes {
		names = append(names, name)
	}
	return names
}
