package domain

import "time"

// SessionRecord is the cached proof of authentication written by the host app
// after login/refresh. The widget process only ever reads it.
type SessionRecord struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the record's expiry has passed. An expired record
// is treated everywhere as if it were absent.
func (s SessionRecord) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
