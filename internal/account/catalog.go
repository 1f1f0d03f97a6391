package account

import "go.uber.org/zap"

// Catalog owns the configured account pool. Lookup is by username; the
// stored order is the configuration order and is preserved everywhere.
type Catalog struct {
	creds     []Credential
	index     map[string]int
	endpoints Endpoints
	logger    *zap.Logger
}

// NewCatalog builds a catalog over the given credentials. Duplicate
// usernames keep the first entry; later duplicates are dropped with a log.
func NewCatalog(creds []Credential, eps Endpoints, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{
		index:     make(map[string]int, len(creds)),
		endpoints: eps,
		logger:    logger,
	}
	for _, cred := range creds {
		if _, dup := c.index[cred.Username]; dup && cred.Username != "" {
			logger.Warn("duplicate account dropped", zap.String("username", cred.Username))
			continue
		}
		c.index[cred.Username] = len(c.creds)
		c.creds = append(c.creds, cred)
	}
	return c
}

// Len returns the number of stored credentials, valid or not.
func (c *Catalog) Len() int { return len(c.creds) }

// ValidSessions derives a session per valid credential, in stored order.
// Invalid entries are filtered with a log naming the missing field; they
// are never an error on their own.
func (c *Catalog) ValidSessions() []*Session {
	sessions := make([]*Session, 0, len(c.creds))
	for i := range c.creds {
		cred := &c.creds[i]
		if missing := cred.MissingField(); missing != "" {
			c.logger.Warn("skipping invalid account",
				zap.String("username", cred.Username),
				zap.String("missing", missing))
			continue
		}
		sessions = append(sessions, NewSession(*cred, c.endpoints))
	}
	return sessions
}

// ByUsername derives a fresh session for one account.
func (c *Catalog) ByUsername(name string) (*Session, bool) {
	i, ok := c.index[name]
	if !ok || !c.creds[i].Valid() {
		return nil, false
	}
	return NewSession(c.creds[i], c.endpoints), true
}

// Update merges non-empty patch fields into the stored credential and
// reports whether the account exists. A miss is a no-op, not an error.
// Sessions derived before the update are unaffected.
func (c *Catalog) Update(name string, patch Patch) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	cred := &c.creds[i]
	if patch.SessionID != "" {
		cred.SessionID = patch.SessionID
	}
	if patch.MSToken != "" {
		cred.MSToken = patch.MSToken
	}
	if patch.UserAgent != "" {
		cred.UserAgent = patch.UserAgent
	}
	if len(patch.Settings) > 0 {
		if cred.Settings == nil {
			cred.Settings = make(map[string]string, len(patch.Settings))
		}
		for k, v := range patch.Settings {
			cred.Settings[k] = v
		}
	}
	return true
}
