package domain

// Credentials are subscriber login details for a county records site.
// Some counties (Broward) offer registered access that avoids the
// anti-automation gates on the public search.
type Credentials struct {
	// County is the registry key the credentials belong to.
	County string

	// Username is the subscriber account name.
	Username string

	// Password is the subscriber password. Stored locally only.
	Password string
}

// Valid returns true if both login fields are present.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Password != ""
}
