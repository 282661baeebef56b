// Package access decides whether a protected view may render.
package access

import "github.com/staffdesk/staffdesk/internal/client/session"

// Decision is the outcome of a gate check.
type Decision struct {
	Allow    bool
	Redirect string // target route when Allow is false
}

// Allowed is the positive decision.
var Allowed = Decision{Allow: true}

// Decide applies the gating rules in order: a resource with no required role
// is public; an unauthenticated session is sent to the login route; a missing
// role is sent to the unauthorized route. Pure function, safe to call on
// every render.
func Decide(snap session.Snapshot, requiredRole string) Decision {
	if requiredRole == "" {
		return Allowed
	}
	if snap.State != session.StateAuthenticated {
		return Decision{Redirect: "/login"}
	}
	for _, r := range snap.Identity.Roles {
		if r == requiredRole {
			return Allowed
		}
	}
	return Decision{Redirect: "/unauthorized"}
}
