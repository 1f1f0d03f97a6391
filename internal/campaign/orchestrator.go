// Package campaign owns the run-level execution loop: it resolves which
// campaign phases are enabled, drives each one across every valid session
// in strict sequence, and aggregates the per-session outcomes into one run
// report. One account failing never aborts a phase; one phase failing
// fatally aborts the phases after it but keeps the reports already earned.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tokdrift/internal/account"
	"tokdrift/internal/activity"
	"tokdrift/internal/config"
	"tokdrift/internal/humanize"
	"tokdrift/internal/report"
	"tokdrift/internal/request"
)

// Phase names one campaign category. Enabled phases always run in the
// declaration order below.
type Phase string

const (
	PhaseWarming         Phase = "warming"
	PhaseProfileUpdate   Phase = "profile_update"
	PhaseMassComment     Phase = "mass_comment"
	PhaseMassCommentLike Phase = "mass_comment_like"
)

// State tracks the orchestrator through one run.
type State string

const (
	StateNotStarted  State = "not_started"
	StateReady       State = "ready"
	StateRunning     State = "running"
	StateAllComplete State = "all_complete"
	StateFailed      State = "failed"
)

// ErrNoValidSessions aborts a run before any phase when the account pool
// filters down to nothing.
var ErrNoValidSessions = errors.New("no valid sessions in account pool")

// OrchestratorConfig wires an orchestrator's collaborators. Engine,
// Sleeper, and Logger default to production implementations when nil.
type OrchestratorConfig struct {
	Config    *config.Config
	Engine    *humanize.Engine
	Sleeper   humanize.Sleeper
	Signer    request.Signer
	Transport request.Transport
	Logger    *zap.Logger
}

// Orchestrator runs every enabled phase over the configured account pool.
type Orchestrator struct {
	cfg     *config.Config
	catalog *account.Catalog
	deps    activity.Deps
	logger  *zap.Logger
	state   State
}

// NewOrchestrator builds an orchestrator over the configured accounts.
func NewOrchestrator(oc OrchestratorConfig) *Orchestrator {
	logger := oc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := oc.Engine
	if engine == nil {
		engine = humanize.NewDefault()
	}
	sleeper := oc.Sleeper
	if sleeper == nil {
		sleeper = humanize.RealSleeper{}
	}

	return &Orchestrator{
		cfg:     oc.Config,
		catalog: account.NewCatalog(oc.Config.Accounts, account.DefaultEndpoints(), logger),
		deps: activity.Deps{
			Engine:    engine,
			Sleeper:   sleeper,
			Signer:    oc.Signer,
			Transport: oc.Transport,
			Logger:    logger,
		},
		logger: logger,
		state:  StateNotStarted,
	}
}

// State returns the orchestrator's current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

type phaseSpec struct {
	phase   Phase
	enabled bool
	exec    func(ctx context.Context, sessions []*account.Session) ([]report.Result, error)
}

// Run executes every enabled phase in fixed order and returns the
// aggregated run report. A fatal phase error aborts the phases after it;
// the returned report still carries every phase completed before the
// failure.
func (o *Orchestrator) Run(ctx context.Context) (*report.RunReport, error) {
	sessions := o.catalog.ValidSessions()
	if len(sessions) == 0 {
		o.state = StateFailed
		return nil, ErrNoValidSessions
	}
	o.state = StateReady
	o.logger.Info("sessions loaded",
		zap.Int("valid", len(sessions)),
		zap.Int("configured", o.catalog.Len()))

	run := &report.RunReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	phases := []phaseSpec{
		{PhaseWarming, o.cfg.Warming.Enabled, o.runWarming},
		{PhaseProfileUpdate, o.cfg.Profile.Enabled, o.runProfile},
		{PhaseMassComment, o.cfg.MassActions.Commenting.Enabled, o.runMassComment},
		{PhaseMassCommentLike, o.cfg.MassActions.CommentLiking.Enabled, o.runMassLikeComment},
	}

	o.state = StateRunning
	ranAny := false
	for _, p := range phases {
		if !p.enabled {
			o.logger.Debug("phase skipped", zap.String("phase", string(p.phase)))
			continue
		}
		if ranAny {
			delay := o.deps.Engine.Delay(o.cfg.Pacing.BetweenPhasesMin, o.cfg.Pacing.BetweenPhasesMax)
			if err := o.deps.Sleeper.Sleep(ctx, delay); err != nil {
				o.state = StateFailed
				run.FinishedAt = time.Now()
				return run, err
			}
		}

		o.logger.Info("phase started", zap.String("phase", string(p.phase)))
		results, err := p.exec(ctx, sessions)
		if err != nil {
			// The failing phase never completed, so it records nothing;
			// earlier phases keep their reports.
			o.state = StateFailed
			run.FinishedAt = time.Now()
			return run, fmt.Errorf("phase %s: %w", p.phase, err)
		}

		run.Phases = append(run.Phases, report.PhaseReport{
			Phase:   string(p.phase),
			Results: results,
		})
		o.logger.Info("phase complete",
			zap.String("phase", string(p.phase)),
			zap.Int("ok", run.Phases[len(run.Phases)-1].Succeeded()),
			zap.Int("failed", run.Phases[len(run.Phases)-1].Failed()))
		ranAny = true
	}

	o.state = StateAllComplete
	run.FinishedAt = time.Now()
	return run, nil
}

// perSession drives one session-scoped executor across the pool with the
// standard containment: an activity failure becomes a failed result and the
// loop continues; external termination is fatal.
func (o *Orchestrator) perSession(
	ctx context.Context,
	sessions []*account.Session,
	runOne func(ctx context.Context, s *account.Session) (string, error),
) ([]report.Result, error) {
	results := make([]report.Result, 0, len(sessions))
	for i, s := range sessions {
		payload, err := runOne(ctx, s)
		switch {
		case err == nil:
			results = append(results, report.Succeeded(s.Username(), payload))
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			o.logger.Warn("session failed",
				zap.String("username", s.Username()),
				zap.Error(err))
			results = append(results, report.Failed(s.Username(), err))
		}

		if i < len(sessions)-1 {
			delay := o.deps.Engine.Delay(o.cfg.Pacing.BetweenAccountsMin, o.cfg.Pacing.BetweenAccountsMax)
			if err := o.deps.Sleeper.Sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

func (o *Orchestrator) runWarming(ctx context.Context, sessions []*account.Session) ([]report.Result, error) {
	w := activity.NewWarming(o.cfg.Warming, o.cfg.Pacing, o.deps)
	return o.perSession(ctx, sessions, w.Run)
}

func (o *Orchestrator) runProfile(ctx context.Context, sessions []*account.Session) ([]report.Result, error) {
	assets := activity.LoadProfileAssets(o.cfg.Profile, o.logger)
	p := activity.NewProfile(o.cfg.Profile, assets, o.deps)
	return o.perSession(ctx, sessions, p.Run)
}

func (o *Orchestrator) runMassComment(ctx context.Context, sessions []*account.Session) ([]report.Result, error) {
	return activity.MassComment(ctx, sessions, o.cfg.MassActions.Commenting, o.deps)
}

func (o *Orchestrator) runMassLikeComment(ctx context.Context, sessions []*account.Session) ([]report.Result, error) {
	return activity.MassLikeComment(ctx, sessions, o.cfg.MassActions.CommentLiking, o.deps)
}
