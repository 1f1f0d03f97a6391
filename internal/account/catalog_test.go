package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCreds() []Credential {
	return []Credential{
		{Username: "alice", SessionID: "s1", MSToken: "m1", UserAgent: "UA-1"},
		{Username: "bob", SessionID: "s2", UserAgent: "UA-2"},
		{Username: "carol", SessionID: "s3", MSToken: "m3"}, // no user agent
		{Username: "", SessionID: "s4", UserAgent: "UA-4"},  // no username
	}
}

func TestValidSessions(t *testing.T) {
	cat := NewCatalog(testCreds(), DefaultEndpoints(), zap.NewNop())

	sessions := cat.ValidSessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "alice", sessions[0].Username())
	assert.Equal(t, "bob", sessions[1].Username())
}

func TestCookieHeaderOrdering(t *testing.T) {
	cred := Credential{
		Username:  "alice",
		SessionID: "sid-123",
		MSToken:   "tok-456",
		UserAgent: "UA",
		Cookies: []CookiePair{
			{Name: "tt_csrf", Value: "abc"},
			{Name: "odin_tt", Value: "def"},
		},
	}
	s := NewSession(cred, DefaultEndpoints())
	assert.Equal(t, "sessionid=sid-123; msToken=tok-456; tt_csrf=abc; odin_tt=def", s.CookieHeader())
}

func TestCookieHeaderSkipsEmptyFields(t *testing.T) {
	cred := Credential{Username: "bob", SessionID: "sid", UserAgent: "UA"}
	s := NewSession(cred, DefaultEndpoints())
	assert.Equal(t, "sessionid=sid", s.CookieHeader())
}

func TestByUsername(t *testing.T) {
	cat := NewCatalog(testCreds(), DefaultEndpoints(), zap.NewNop())

	t.Run("valid account found", func(t *testing.T) {
		s, ok := cat.ByUsername("alice")
		require.True(t, ok)
		assert.Equal(t, "alice", s.Username())
	})

	t.Run("invalid account not exposed", func(t *testing.T) {
		_, ok := cat.ByUsername("carol")
		assert.False(t, ok)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, ok := cat.ByUsername("nobody")
		assert.False(t, ok)
	})
}

func TestUpdate(t *testing.T) {
	cat := NewCatalog(testCreds(), DefaultEndpoints(), zap.NewNop())

	t.Run("merges fields and repairs validity", func(t *testing.T) {
		// carol is invalid until a user agent is patched in.
		require.True(t, cat.Update("carol", Patch{UserAgent: "UA-3"}))
		s, ok := cat.ByUsername("carol")
		require.True(t, ok)
		assert.Equal(t, "UA-3", s.UserAgent())
	})

	t.Run("missing account is a no-op", func(t *testing.T) {
		assert.False(t, cat.Update("nobody", Patch{UserAgent: "x"}))
	})

	t.Run("existing sessions are unaffected", func(t *testing.T) {
		before, ok := cat.ByUsername("alice")
		require.True(t, ok)
		require.True(t, cat.Update("alice", Patch{SessionID: "rotated"}))
		assert.Equal(t, "sessionid=s1; msToken=m1", before.CookieHeader())

		after, ok := cat.ByUsername("alice")
		require.True(t, ok)
		assert.Equal(t, "sessionid=rotated; msToken=m1", after.CookieHeader())
	})
}

func TestInvalidAccountDoesNotAffectOthers(t *testing.T) {
	creds := []Credential{
		{Username: "ok1", SessionID: "s", UserAgent: "ua"},
		{Username: "broken", SessionID: "s"},
		{Username: "ok2", SessionID: "s", UserAgent: "ua"},
	}
	cat := NewCatalog(creds, DefaultEndpoints(), zap.NewNop())
	sessions := cat.ValidSessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "ok1", sessions[0].Username())
	assert.Equal(t, "ok2", sessions[1].Username())
}
