package account

import "strings"

// Endpoints are the base URLs a session's requests are built against.
type Endpoints struct {
	API string
	Web string
}

// DefaultEndpoints point at the production hosts.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		API: "https://www.tiktok.com/api",
		Web: "https://www.tiktok.com",
	}
}

// Session binds one credential to derived request-building state. It is
// immutable for its lifetime: later catalog updates produce new sessions,
// they never reach into an existing one.
type Session struct {
	credential Credential
	cookie     string
	endpoints  Endpoints
}

// NewSession derives a session from a credential. The cookie string is the
// deterministic concatenation of non-empty auth fields: sessionid first,
// msToken second, then any remaining cookie entries in their original order.
func NewSession(cred Credential, eps Endpoints) *Session {
	parts := make([]string, 0, 2+len(cred.Cookies))
	if cred.SessionID != "" {
		parts = append(parts, "sessionid="+cred.SessionID)
	}
	if cred.MSToken != "" {
		parts = append(parts, "msToken="+cred.MSToken)
	}
	for _, c := range cred.Cookies {
		if c.Name != "" && c.Value != "" {
			parts = append(parts, c.Name+"="+c.Value)
		}
	}
	return &Session{
		credential: cred,
		cookie:     strings.Join(parts, "; "),
		endpoints:  eps,
	}
}

// Username returns the account identity this session acts as.
func (s *Session) Username() string { return s.credential.Username }

// UserAgent returns the account's pinned user agent.
func (s *Session) UserAgent() string { return s.credential.UserAgent }

// CookieHeader returns the assembled Cookie header value.
func (s *Session) CookieHeader() string { return s.cookie }

// Endpoints returns the base URLs for this session.
func (s *Session) Endpoints() Endpoints { return s.endpoints }

// Setting returns a feature-specific account setting, if present.
func (s *Session) Setting(key string) (string, bool) {
	v, ok := s.credential.Settings[key]
	return v, ok
}
