// Package session defines the per-request identity value. A session is
// rebuilt from the signed token on every request and handed to handlers
// explicitly; there is no global login state.
package session

import "time"

// Session carries the logged-in identity plus the moment it was established.
type Session struct {
	UserID    int64
	Name      string
	Email     string
	Type      string
	LoginTime time.Time
}

func (s Session) IsAdmin() bool {
	return s.Type == "admin"
}

// Expired reports whether the login is older than the fixed session TTL.
// A session past the TTL is treated as logged out regardless of what the
// token itself claims.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoginTime) > ttl
}
