// Package menu builds the console navigation from module-level access.
// The dashboard and roles entries are always visible regardless of
// permission evaluation; that exception lives here, on the caller side,
// never inside the access evaluator.
package menu

// Item is one navigation entry.
type Item struct {
	Module string `json:"module"`
	Label  string `json:"label"`
	Path   string `json:"path"`
}

// ModuleAccess answers module-level read access. The gatehouse Evaluator
// satisfies it.
type ModuleAccess interface {
	CanAccessModule(module string) bool
}

// alwaysVisible modules bypass permission evaluation entirely.
var alwaysVisible = map[string]bool{
	"dashboard": true,
	"roles":     true,
}

// DefaultItems returns the console's full navigation in display order.
func DefaultItems() []Item {
	return []Item{
		{Module: "dashboard", Label: "Dashboard", Path: "/"},
		{Module: "users", Label: "Users", Path: "/users"},
		{Module: "units", Label: "Units", Path: "/units"},
		{Module: "finance", Label: "Finance", Path: "/finance"},
		{Module: "notices", Label: "Notices", Path: "/notices"},
		{Module: "security", Label: "Security", Path: "/security"},
		{Module: "amenities", Label: "Amenities", Path: "/amenities"},
		{Module: "maintenance", Label: "Maintenance", Path: "/maintenance"},
		{Module: "reports", Label: "Reports", Path: "/reports"},
		{Module: "roles", Label: "Roles", Path: "/roles"},
	}
}

// Build filters items down to the ones the current identity may see.
// Display order is preserved.
func Build(access ModuleAccess, items []Item) []Item {
	visible := make([]Item, 0, len(items))
	for _, item := range items {
		if alwaysVisible[item.Module] || access.CanAccessModule(item.Module) {
			visible = append(visible, item)
		}
	}
	return visible
}
