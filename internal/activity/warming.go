package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tokdrift/internal/account"
	"tokdrift/internal/config"
	"tokdrift/internal/humanize"
	"tokdrift/internal/request"
)

// Probabilities fixed by the behavior model, not configuration: after each
// watched video there is a 70% chance of scrolling onward and a 20% chance
// of liking it.
const (
	scrollNextProbability = 0.7
	likeProbability       = 0.2
)

// Warming runs one account through the warm-up sequence: feed scrolling,
// video watching, and searches, in that fixed order, each gated by its own
// enabled flag.
type Warming struct {
	cfg    config.WarmingConfig
	pacing config.PacingConfig
	deps   Deps
}

// NewWarming builds the warming executor.
func NewWarming(cfg config.WarmingConfig, pacing config.PacingConfig, deps Deps) *Warming {
	return &Warming{cfg: cfg, pacing: pacing, deps: deps}
}

// Run executes the warming sequence for one session. Transport failures
// inside the sub-activities are contained and logged; only a suspension
// failure (external termination) or a broken precondition surfaces.
func (w *Warming) Run(ctx context.Context, s *account.Session) (string, error) {
	fac := w.deps.Facade(s)
	log := w.deps.logger().With(zap.String("username", s.Username()))

	var scrolled, watched, searched int

	if w.cfg.Activities.Scroll.Enabled {
		n, err := w.scroll(ctx)
		if err != nil {
			return "", err
		}
		scrolled = n
	}
	if err := w.stepDelay(ctx); err != nil {
		return "", err
	}

	if w.cfg.Activities.VideoWatch.Enabled {
		n, err := w.videoWatch(ctx, fac, log)
		if err != nil {
			return "", err
		}
		watched = n
	}
	if err := w.stepDelay(ctx); err != nil {
		return "", err
	}

	if w.cfg.Activities.Search.Enabled {
		n, err := w.search(ctx, fac, log)
		if err != nil {
			return "", err
		}
		searched = n
	}

	return fmt.Sprintf("scrolled %d, watched %d, searched %d", scrolled, watched, searched), nil
}

func (w *Warming) stepDelay(ctx context.Context) error {
	return w.deps.Sleeper.Sleep(ctx,
		w.deps.Engine.Delay(w.pacing.BetweenStepsMin, w.pacing.BetweenStepsMax))
}

// scroll consumes one scroll pattern, honoring every step's wait. Scrolling
// is pure timing: nothing is dispatched.
func (w *Warming) scroll(ctx context.Context) (int, error) {
	sc := w.cfg.Activities.Scroll
	n := w.deps.Engine.Int(sc.MinScrolls, sc.MaxScrolls)
	pattern := w.deps.Engine.ScrollPattern(n, sc.SpeedMin, sc.SpeedMax)
	for _, step := range pattern {
		if err := w.deps.Sleeper.Sleep(ctx, step.Duration); err != nil {
			return 0, err
		}
	}
	return n, nil
}

type feedEnvelope struct {
	ItemList []struct {
		ID string `json:"id"`
	} `json:"itemList"`
}

// videoWatch fetches the feed once, then simulates watching a random number
// of videos. A failed feed fetch or like is logged and contained; the
// session keeps warming.
func (w *Warming) videoWatch(ctx context.Context, fac *request.Facade, log *zap.Logger) (int, error) {
	vw := w.cfg.Activities.VideoWatch
	h := w.cfg.Humanization

	var items []string
	if resp, err := fac.Execute(ctx, fac.BuildFeed()); err != nil {
		log.Warn("feed fetch failed, watching blind", zap.Error(err))
	} else {
		var env feedEnvelope
		if err := json.Unmarshal(resp.Body, &env); err == nil {
			for _, it := range env.ItemList {
				if it.ID != "" {
					items = append(items, it.ID)
				}
			}
		}
	}

	n := w.deps.Engine.Int(vw.MinVideos, vw.MaxVideos)
	for i := 0; i < n; i++ {
		length := w.deps.Engine.Delay(vw.VideoLengthMin, vw.VideoLengthMax)
		watch := w.deps.Engine.WatchTime(length, h.WatchPctMin, h.WatchPctMax)
		if err := w.deps.Sleeper.Sleep(ctx, watch); err != nil {
			return 0, err
		}

		if w.deps.Engine.ShouldPerform(scrollNextProbability) {
			if err := w.deps.Sleeper.Sleep(ctx, w.deps.Engine.Delay(500, 1500)); err != nil {
				return 0, err
			}
		}

		if w.deps.Engine.ShouldPerform(likeProbability) && len(items) > 0 {
			if err := w.like(ctx, fac, items[i%len(items)]); err != nil {
				log.Warn("like failed", zap.Error(err))
			}
		}

		if w.deps.Engine.ShouldPerform(h.PauseProbability) {
			pause := w.deps.Engine.Delay(h.PauseDurationMin, h.PauseDurationMax)
			if err := w.deps.Sleeper.Sleep(ctx, pause); err != nil {
				return 0, err
			}
		}
	}
	return n, nil
}

func (w *Warming) like(ctx context.Context, fac *request.Facade, videoID string) error {
	d, err := fac.BuildLikeVideo(videoID)
	if err != nil {
		return err
	}
	_, err = fac.Execute(ctx, d)
	return err
}

// search runs a random number of queries from the configured candidates,
// with a typing delay before and a browse delay after each, and an
// inter-query delay except after the last. A failed search call is logged
// and contained.
func (w *Warming) search(ctx context.Context, fac *request.Facade, log *zap.Logger) (int, error) {
	sc := w.cfg.Activities.Search

	k := w.deps.Engine.Int(sc.MinSearches, sc.MaxSearches)
	for i := 0; i < k; i++ {
		query, err := humanize.Choice(w.deps.Engine, sc.Queries)
		if err != nil {
			return 0, &Error{Account: fac.Session().Username(), Op: "search", Err: err}
		}

		typing := w.deps.Engine.Delay(sc.TypingDelayMin, sc.TypingDelayMax)
		if err := w.deps.Sleeper.Sleep(ctx, typing); err != nil {
			return 0, err
		}

		if d, err := fac.BuildSearch(query); err != nil {
			log.Warn("search build failed", zap.String("query", query), zap.Error(err))
		} else if _, err := fac.Execute(ctx, d); err != nil {
			log.Warn("search failed", zap.String("query", query), zap.Error(err))
		}

		browse := w.deps.Engine.Delay(sc.BrowseDelayMin, sc.BrowseDelayMax)
		if err := w.deps.Sleeper.Sleep(ctx, browse); err != nil {
			return 0, err
		}

		if i < k-1 {
			between := w.deps.Engine.Delay(sc.BetweenDelayMin, sc.BetweenDelayMax)
			if err := w.deps.Sleeper.Sleep(ctx, between); err != nil {
				return 0, err
			}
		}
	}
	return k, nil
}
