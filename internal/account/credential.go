// Package account holds the pool of account credentials a run operates on
// and derives the per-run session state request building needs.
package account

// CookiePair is one extra cookie carried by an account, preserved in the
// order it appeared in configuration.
type CookiePair struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Credential is one account's identity and auth material as loaded from
// configuration. Invalid credentials are filtered out, never repaired.
type Credential struct {
	Username  string            `json:"username" yaml:"username"`
	SessionID string            `json:"sessionId" yaml:"sessionId"`
	MSToken   string            `json:"msToken" yaml:"msToken"`
	UserAgent string            `json:"userAgent" yaml:"userAgent"`
	Cookies   []CookiePair      `json:"cookies" yaml:"cookies"`
	Settings  map[string]string `json:"settings" yaml:"settings"`
}

// MissingField names the first required field that is empty, or "" when the
// credential is usable.
func (c *Credential) MissingField() string {
	switch {
	case c.Username == "":
		return "username"
	case c.SessionID == "":
		return "sessionId"
	case c.UserAgent == "":
		return "userAgent"
	}
	return ""
}

// Valid reports whether the credential carries everything a session needs.
func (c *Credential) Valid() bool {
	return c.MissingField() == ""
}

// Patch carries replacement fields for Catalog.Update. Empty fields are
// left untouched; Settings entries are merged key by key.
type Patch struct {
	SessionID string
	MSToken   string
	UserAgent string
	Settings  map[string]string
}
