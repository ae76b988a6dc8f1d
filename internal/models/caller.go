package models

type contextKey string

// CallerContextKey is the request-context key under which the identity
// middleware stores the authenticated *Caller.
const CallerContextKey contextKey = "caller"

// Caller is the identity the gateway authorizer attached to the request:
// the username plus the group memberships that drive site resolution and
// permission checks.
type Caller struct {
	Username string
	Groups   []string
}
