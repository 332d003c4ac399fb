// Package middleware provides HTTP gating middleware for gatehouse.
// Routes are gated by the same Gate specifications the rendering layer
// uses; every decision is recorded in the console's decision log.
package middleware

import (
	"encoding/json"

	"github.com/xraph/forge"

	"github.com/xraph/gatehouse"
	"github.com/xraph/gatehouse/decisionlog"
	"github.com/xraph/gatehouse/permission"
)

// Require gates a route with the given specification. The route string is
// recorded with each decision; pass the pattern the middleware is mounted
// on.
func Require(console *gatehouse.Console, route string, gate gatehouse.Gate) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			allowed := gate.Allowed(console.Evaluator())
			record(console, route, gate, allowed)
			if !allowed {
				return denyResponse(ctx)
			}
			return next(ctx)
		}
	}
}

// RequirePermission gates a route on a single permission code.
func RequirePermission(console *gatehouse.Console, route, code string) forge.Middleware {
	return Require(console, route, gatehouse.Gate{Permission: code})
}

// RequireAction gates a route on the exact permission mapped to the
// (module, action) pair.
func RequireAction(console *gatehouse.Console, route, module string, action permission.Action) forge.Middleware {
	return Require(console, route, gatehouse.Gate{Module: module, Action: action})
}

// RequireModule gates a route on module-level read access.
func RequireModule(console *gatehouse.Console, route, module string) forge.Middleware {
	return Require(console, route, gatehouse.Gate{Module: module, Action: permission.ActionRead})
}

func record(console *gatehouse.Console, route string, gate gatehouse.Gate, allowed bool) {
	subject := "anonymous"
	if ident := console.Identity(); ident != nil {
		subject = ident.ID
	}
	console.Decisions().Append(decisionlog.Entry{
		Subject: subject,
		Path:    route,
		Rule:    gate.String(),
		Allowed: allowed,
	})
	console.Metrics().GateDecisionObserved(allowed)
}

func denyResponse(ctx forge.Context) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(403)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": "access denied"})
}
