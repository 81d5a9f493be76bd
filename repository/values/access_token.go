package values

import "time"

// AccessToken is an opaque OAuth2 bearer token with its expiry.
// A zero expiry means the expiry is unknown.
type AccessToken struct {
	expiry time.Time
	value  string
}

// NewAccessToken creates an access token.
func NewAccessToken(value string, expiry time.Time) AccessToken {
	return AccessToken{
		value:  value,
		expiry: expiry,
	}
}

// Value returns the raw bearer token.
func (t AccessToken) Value() string {
	return t.value
}

// Expiry returns when the token stops being valid.
func (t AccessToken) Expiry() time.Time {
	return t.expiry
}

// IsZero returns true if no token value is present.
func (t AccessToken) IsZero() bool {
	return t.value == ""
}

// ExpiredAt reports whether the token is expired at the given instant.
// Tokens with unknown expiry never expire.
func (t AccessToken) ExpiredAt(now time.Time) bool {
	if t.expiry.IsZero() {
		return false
	}
	return !now.Before(t.expiry)
}
