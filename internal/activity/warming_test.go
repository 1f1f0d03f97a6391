package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokdrift/internal/config"
	"tokdrift/internal/request"
)

func warmingConfig() config.WarmingConfig {
	cfg := config.DefaultConfig().Warming
	cfg.Enabled = true
	return cfg
}

func pacing() config.PacingConfig {
	p := config.DefaultConfig().Pacing
	p.BetweenStepsMin, p.BetweenStepsMax = 10, 20
	return p
}

func TestWarmingScrollOnly(t *testing.T) {
	cfg := warmingConfig()
	cfg.Activities.Scroll.Enabled = true
	cfg.Activities.Scroll.MinScrolls = 2
	cfg.Activities.Scroll.MaxScrolls = 2

	tr := &request.StaticTransport{}
	deps, sleeper := testDeps(tr)
	w := NewWarming(cfg, pacing(), deps)

	payload, err := w.Run(context.Background(), makeSessions(1)[0])
	require.NoError(t, err)
	assert.Equal(t, "scrolled 2, watched 0, searched 0", payload)

	// Scrolling is pure timing: nothing may be dispatched.
	assert.Empty(t, tr.Calls)
	// Two scroll steps plus the two inter-activity delays, plus any
	// humanization pauses the pattern interleaved.
	assert.GreaterOrEqual(t, len(sleeper.Slept), 4)
}

func TestWarmingVideoWatch(t *testing.T) {
	cfg := warmingConfig()
	cfg.Activities.VideoWatch.Enabled = true
	cfg.Activities.VideoWatch.MinVideos = 3
	cfg.Activities.VideoWatch.MaxVideos = 3

	t.Run("fetches feed once and likes from it", func(t *testing.T) {
		tr := &request.StaticTransport{
			Body: []byte(`{"itemList":[{"id":"111"},{"id":"222"}]}`),
		}
		deps, _ := testDeps(tr)
		w := NewWarming(cfg, pacing(), deps)

		payload, err := w.Run(context.Background(), makeSessions(1)[0])
		require.NoError(t, err)
		assert.Equal(t, "scrolled 0, watched 3, searched 0", payload)
		assert.Equal(t, 1, tr.CallsTo("recommend/item_list"))
		// Likes target only ids from the feed.
		for _, d := range tr.Calls[1:] {
			assert.Contains(t, d.URL, "commit/item/digg")
		}
	})

	t.Run("feed failure is contained", func(t *testing.T) {
		tr := &request.StaticTransport{FailWhen: map[string]error{
			"recommend/item_list": errors.New("timeout"),
		}}
		deps, _ := testDeps(tr)
		w := NewWarming(cfg, pacing(), deps)

		_, err := w.Run(context.Background(), makeSessions(1)[0])
		assert.NoError(t, err, "a failed feed fetch must not fail the session")
	})

	t.Run("like failure is contained", func(t *testing.T) {
		tr := &request.StaticTransport{
			Body:     []byte(`{"itemList":[{"id":"111"}]}`),
			FailWhen: map[string]error{"commit/item/digg": errors.New("blocked")},
		}
		deps, _ := testDeps(tr)
		w := NewWarming(cfg, pacing(), deps)

		_, err := w.Run(context.Background(), makeSessions(1)[0])
		assert.NoError(t, err)
	})
}

func TestWarmingSearch(t *testing.T) {
	cfg := warmingConfig()
	cfg.Activities.Search.Enabled = true
	cfg.Activities.Search.MinSearches = 2
	cfg.Activities.Search.MaxSearches = 2
	cfg.Activities.Search.Queries = []string{"cats", "dogs"}

	t.Run("issues the drawn number of searches", func(t *testing.T) {
		tr := &request.StaticTransport{}
		deps, _ := testDeps(tr)
		w := NewWarming(cfg, pacing(), deps)

		payload, err := w.Run(context.Background(), makeSessions(1)[0])
		require.NoError(t, err)
		assert.Equal(t, "scrolled 0, watched 0, searched 2", payload)
		assert.Equal(t, 2, tr.CallsTo("search/general"))
		for _, d := range tr.Calls {
			assert.Contains(t, d.URL, "keyword=")
		}
	})

	t.Run("search failure is contained", func(t *testing.T) {
		tr := &request.StaticTransport{FailWhen: map[string]error{
			"search/general": errors.New("captcha"),
		}}
		deps, _ := testDeps(tr)
		w := NewWarming(cfg, pacing(), deps)

		_, err := w.Run(context.Background(), makeSessions(1)[0])
		assert.NoError(t, err, "a failed search must not fail the session")
	})
}

func TestWarmingHonorsExternalTermination(t *testing.T) {
	cfg := warmingConfig()
	cfg.Activities.Scroll.Enabled = true
	cfg.Activities.Scroll.MinScrolls = 5
	cfg.Activities.Scroll.MaxScrolls = 5

	deps, _ := testDeps(&request.StaticTransport{})
	deps.Sleeper = failingSleeper{}
	w := NewWarming(cfg, pacing(), deps)

	_, err := w.Run(context.Background(), makeSessions(1)[0])
	require.ErrorIs(t, err, context.Canceled)
}

type failingSleeper struct{}

func (failingSleeper) Sleep(context.Context, time.Duration) error {
	return context.Canceled
}
