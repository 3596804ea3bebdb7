// Package model contains the domain types shared across layers.
// No persistence or HTTP framework dependencies here.
package model

// User is a per-browser identity: an opaque id plus a chosen display name.
// The server only mints the pair; there is no server-side user registry.
// The browser persists it and sends the id with every request.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// VendedToken is a scope-restricted, time-bounded credential issued by the
// auth backend. ExpiresAt is epoch seconds; the JSON shape {token, exp} is
// part of the public token API.
type VendedToken struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"exp"`
}
