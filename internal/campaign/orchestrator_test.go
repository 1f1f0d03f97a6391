package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"tokdrift/internal/account"
	"tokdrift/internal/activity"
	"tokdrift/internal/config"
	"tokdrift/internal/humanize"
	"tokdrift/internal/request"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func threeAccounts() []account.Credential {
	return []account.Credential{
		{Username: "alice", SessionID: "s1", UserAgent: "UA"},
		{Username: "bob", SessionID: "s2", UserAgent: "UA"},
		{Username: "carol", SessionID: "s3", UserAgent: "UA"},
	}
}

func newTestOrchestrator(cfg *config.Config, tr request.Transport) *Orchestrator {
	return NewOrchestrator(OrchestratorConfig{
		Config:    cfg,
		Engine:    humanize.NewSeeded(1),
		Sleeper:   &humanize.RecordingSleeper{},
		Transport: tr,
		Logger:    zap.NewNop(),
	})
}

func TestRunScrollOnlyWarming(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Accounts = threeAccounts()
	cfg.Warming.Enabled = true
	cfg.Warming.Activities.Scroll.Enabled = true
	cfg.Warming.Activities.Scroll.MinScrolls = 2
	cfg.Warming.Activities.Scroll.MaxScrolls = 2

	tr := &request.StaticTransport{}
	o := newTestOrchestrator(cfg, tr)

	run, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateAllComplete, o.State())

	require.Len(t, run.Phases, 1)
	phase := run.Phases[0]
	assert.Equal(t, string(PhaseWarming), phase.Phase)
	require.Len(t, phase.Results, 3)
	for _, r := range phase.Results {
		assert.True(t, r.Success, "account %s", r.Account)
	}

	// Scroll-only warming must not touch videoWatch or search endpoints.
	assert.Zero(t, tr.CallsTo("recommend/item_list"))
	assert.Zero(t, tr.CallsTo("search/general"))
}

func TestRunFailsFastWithoutValidSessions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Accounts = []account.Credential{
		{Username: "broken", SessionID: "s"}, // missing user agent
	}
	cfg.Warming.Enabled = true

	o := newTestOrchestrator(cfg, &request.StaticTransport{})

	run, err := o.Run(context.Background())
	require.ErrorIs(t, err, ErrNoValidSessions)
	assert.Nil(t, run, "no partial report before session load")
	assert.Equal(t, StateFailed, o.State())
}

func TestRunPhaseOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Accounts = threeAccounts()
	cfg.Warming.Enabled = true
	cfg.Warming.Activities.Scroll.Enabled = true
	cfg.Warming.Activities.Scroll.MinScrolls = 1
	cfg.Warming.Activities.Scroll.MaxScrolls = 1
	cfg.Profile.Enabled = true // no candidate assets: sessions still succeed
	cfg.MassActions.Commenting.Enabled = true
	cfg.MassActions.Commenting.VideoID = "42"
	cfg.MassActions.Commenting.Comments = []string{"nice"}
	cfg.MassActions.CommentLiking.Enabled = true
	cfg.MassActions.CommentLiking.VideoID = "42"
	cfg.MassActions.CommentLiking.CommentID = "c1"

	o := newTestOrchestrator(cfg, &request.StaticTransport{})

	run, err := o.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, run.Phases, 4)
	assert.Equal(t, string(PhaseWarming), run.Phases[0].Phase)
	assert.Equal(t, string(PhaseProfileUpdate), run.Phases[1].Phase)
	assert.Equal(t, string(PhaseMassComment), run.Phases[2].Phase)
	assert.Equal(t, string(PhaseMassCommentLike), run.Phases[3].Phase)

	for _, phase := range run.Phases {
		assert.Len(t, phase.Results, 3, "phase %s", phase.Phase)
	}
}

func TestRunPhaseValidationFailureAbortsLaterPhases(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Accounts = threeAccounts()
	cfg.Warming.Enabled = true
	cfg.Warming.Activities.Scroll.Enabled = true
	cfg.Warming.Activities.Scroll.MinScrolls = 1
	cfg.Warming.Activities.Scroll.MaxScrolls = 1
	// Commenting enabled with no resolvable target: fatal at phase entry.
	cfg.MassActions.Commenting.Enabled = true
	cfg.MassActions.Commenting.Comments = []string{"nice"}
	cfg.MassActions.CommentLiking.Enabled = true
	cfg.MassActions.CommentLiking.VideoID = "42"
	cfg.MassActions.CommentLiking.CommentID = "c1"

	tr := &request.StaticTransport{}
	o := newTestOrchestrator(cfg, tr)

	run, err := o.Run(context.Background())
	var vErr *activity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StateFailed, o.State())

	// The completed warming phase keeps its report; the failed phase and
	// the liking phase after it record nothing.
	require.NotNil(t, run)
	require.Len(t, run.Phases, 1)
	assert.Equal(t, string(PhaseWarming), run.Phases[0].Phase)
	assert.Zero(t, tr.CallsTo("comment/digg"), "later phase must not run")
}

func TestRunMassPhaseFaultIsolation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Accounts = threeAccounts()
	cfg.MassActions.Commenting.Enabled = true
	cfg.MassActions.Commenting.VideoID = "42"
	cfg.MassActions.Commenting.Comments = []string{"a", "b"}

	tr := &request.StaticTransport{FailWhen: map[string]error{
		"comment/publish": assert.AnError,
	}}
	o := newTestOrchestrator(cfg, tr)

	run, err := o.Run(context.Background())
	require.NoError(t, err, "per-session failures are not fatal")

	require.Len(t, run.Phases, 1)
	phase := run.Phases[0]
	assert.Equal(t, 3, phase.Failed())
	for _, r := range phase.Results {
		assert.NotEmpty(t, r.Err)
	}
}
