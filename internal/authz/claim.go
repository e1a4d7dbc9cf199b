package authz

// Claim is the verified identity extracted from a session token. Handlers
// build it from the auth middleware context; services never see raw tokens.
type Claim struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}
