package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Error is the fatal configuration failure class: an unreadable or
// malformed source, or a schema violation caught at load time. Nothing
// runs once one of these surfaces.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := "config " + e.Path + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads, parses, and validates a configuration file. Format is chosen
// by extension: .yaml/.yml parse as YAML, everything else as JSON. Values
// are overlaid on DefaultConfig, so absent fields keep their documented
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Reason: "unreadable", Err: err}
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &Error{Path: path, Reason: "malformed yaml", Err: err}
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, &Error{Path: path, Reason: "malformed json", Err: err}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &Error{Path: path, Reason: "invalid", Err: err}
	}
	return cfg, nil
}

// Validate checks range and probability invariants once, up front, so the
// executors never have to defend against an inverted range mid-run.
func (c *Config) Validate() error {
	ranges := []struct {
		name     string
		min, max int
	}{
		{"warming.activities.scroll", c.Warming.Activities.Scroll.MinScrolls, c.Warming.Activities.Scroll.MaxScrolls},
		{"warming.activities.scroll.speed", c.Warming.Activities.Scroll.SpeedMin, c.Warming.Activities.Scroll.SpeedMax},
		{"warming.activities.videoWatch", c.Warming.Activities.VideoWatch.MinVideos, c.Warming.Activities.VideoWatch.MaxVideos},
		{"warming.activities.videoWatch.videoLength", c.Warming.Activities.VideoWatch.VideoLengthMin, c.Warming.Activities.VideoWatch.VideoLengthMax},
		{"warming.activities.search", c.Warming.Activities.Search.MinSearches, c.Warming.Activities.Search.MaxSearches},
		{"warming.activities.search.typingDelay", c.Warming.Activities.Search.TypingDelayMin, c.Warming.Activities.Search.TypingDelayMax},
		{"warming.activities.search.browseDelay", c.Warming.Activities.Search.BrowseDelayMin, c.Warming.Activities.Search.BrowseDelayMax},
		{"warming.activities.search.betweenDelay", c.Warming.Activities.Search.BetweenDelayMin, c.Warming.Activities.Search.BetweenDelayMax},
		{"warming.humanization.pauseDuration", c.Warming.Humanization.PauseDurationMin, c.Warming.Humanization.PauseDurationMax},
		{"profile.delay", c.Profile.DelayMin, c.Profile.DelayMax},
		{"massActions.commenting.delayBetweenAccounts", c.MassActions.Commenting.DelayBetweenMin, c.MassActions.Commenting.DelayBetweenMax},
		{"massActions.commentLiking.delayBetweenAccounts", c.MassActions.CommentLiking.DelayBetweenMin, c.MassActions.CommentLiking.DelayBetweenMax},
		{"pacing.betweenPhases", c.Pacing.BetweenPhasesMin, c.Pacing.BetweenPhasesMax},
		{"pacing.betweenSteps", c.Pacing.BetweenStepsMin, c.Pacing.BetweenStepsMax},
		{"pacing.betweenAccounts", c.Pacing.BetweenAccountsMin, c.Pacing.BetweenAccountsMax},
	}
	for _, r := range ranges {
		if r.min < 0 {
			return fmt.Errorf("%s: min %d is negative", r.name, r.min)
		}
		if r.min > r.max {
			return fmt.Errorf("%s: min %d exceeds max %d", r.name, r.min, r.max)
		}
	}

	h := c.Warming.Humanization
	if h.PauseProbability < 0 || h.PauseProbability > 1 {
		return fmt.Errorf("warming.humanization.pauseProbability: %v outside [0,1]", h.PauseProbability)
	}
	if h.WatchPctMin < 0 || h.WatchPctMax > 1 || h.WatchPctMin >= h.WatchPctMax {
		return fmt.Errorf("warming.humanization.watchPct: [%v,%v) is not a valid window", h.WatchPctMin, h.WatchPctMax)
	}

	if c.Warming.Enabled && c.Warming.Activities.Search.Enabled && len(c.Warming.Activities.Search.Queries) == 0 {
		return fmt.Errorf("warming.activities.search: enabled with no queries")
	}
	if c.MassActions.Commenting.Enabled && len(c.MassActions.Commenting.Comments) == 0 {
		return fmt.Errorf("massActions.commenting: enabled with no comments")
	}
	if c.Archive.Enabled && c.Archive.Path == "" {
		return fmt.Errorf("archive: enabled with no path")
	}
	return nil
}
