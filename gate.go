package gatehouse

import (
	"fmt"
	"strings"

	"github.com/xraph/gatehouse/permission"
)

// Gate is the declarative access requirement attached to a piece of
// content: "include this only if access is granted." A zero Gate grants
// unconditionally; callers rely on leaving every field unset to mean
// "always show."
//
// When several fields are set, the first matching specification wins:
// Permission, then Permissions, then Module+Action.
type Gate struct {
	// Permission requires a single permission code.
	Permission string `json:"permission,omitempty"`

	// Permissions requires one of the listed codes, or all of them when
	// RequireAll is set.
	Permissions []string `json:"permissions,omitempty"`
	RequireAll  bool     `json:"require_all,omitempty"`

	// Module and Action together require the exact permission mapped to
	// the (module, action) pair. Both must be set to take effect.
	Module string            `json:"module,omitempty"`
	Action permission.Action `json:"action,omitempty"`
}

// Allowed evaluates the gate against the evaluator.
func (g Gate) Allowed(ev *Evaluator) bool {
	switch {
	case g.Permission != "":
		return ev.HasPermission(g.Permission)
	case len(g.Permissions) > 0:
		if g.RequireAll {
			return ev.HasAllPermissions(g.Permissions...)
		}
		return ev.HasAnyPermission(g.Permissions...)
	case g.Module != "" && g.Action != "":
		return ev.CanPerformAction(g.Module, g.Action)
	default:
		return true
	}
}

// String describes the specification the gate evaluates, in precedence
// order. Used as the rule text in the decision log.
func (g Gate) String() string {
	switch {
	case g.Permission != "":
		return "permission=" + g.Permission
	case len(g.Permissions) > 0:
		mode := "any"
		if g.RequireAll {
			mode = "all"
		}
		return fmt.Sprintf("permissions=%s[%s]", mode, strings.Join(g.Permissions, " "))
	case g.Module != "" && g.Action != "":
		return fmt.Sprintf("module=%s action=%s", g.Module, g.Action)
	default:
		return "open"
	}
}

// Render returns content when the gate allows, else fallback. It is the
// conditional-inclusion primitive the console's screens build on.
func Render[T any](ev *Evaluator, g Gate, content, fallback T) T {
	if g.Allowed(ev) {
		return content
	}
	return fallback
}
