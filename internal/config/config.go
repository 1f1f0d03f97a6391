// Package config defines the typed campaign configuration schema, its
// documented defaults, and the fail-fast loader. Every tunable an executor
// reads lives here; executors never reach around the schema with ad hoc
// lookups.
package config

import (
	"tokdrift/internal/account"
)

// Config is the full campaign configuration.
type Config struct {
	Accounts    []account.Credential `json:"accounts" yaml:"accounts"`
	Warming     WarmingConfig        `json:"warming" yaml:"warming"`
	Profile     ProfileConfig        `json:"profile" yaml:"profile"`
	MassActions MassActionsConfig    `json:"massActions" yaml:"massActions"`
	Pacing      PacingConfig         `json:"pacing" yaml:"pacing"`
	Archive     ArchiveConfig        `json:"archive" yaml:"archive"`
}

// WarmingConfig drives the account-warming phase.
type WarmingConfig struct {
	Enabled      bool               `json:"enabled" yaml:"enabled"`
	Activities   ActivitiesConfig   `json:"activities" yaml:"activities"`
	Humanization HumanizationConfig `json:"humanization" yaml:"humanization"`
}

// ActivitiesConfig gates and tunes the individual warming sub-activities.
type ActivitiesConfig struct {
	Scroll     ScrollConfig     `json:"scroll" yaml:"scroll"`
	VideoWatch VideoWatchConfig `json:"videoWatch" yaml:"videoWatch"`
	Search     SearchConfig     `json:"search" yaml:"search"`
}

// ScrollConfig tunes feed scrolling. Speeds are milliseconds between
// scroll steps.
type ScrollConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	MinScrolls int  `json:"minScrolls" yaml:"minScrolls"`
	MaxScrolls int  `json:"maxScrolls" yaml:"maxScrolls"`
	SpeedMin   int  `json:"speedMin" yaml:"speedMin"`
	SpeedMax   int  `json:"speedMax" yaml:"speedMax"`
}

// VideoWatchConfig tunes simulated video viewing. Video lengths are the
// assumed full durations, milliseconds; the watched portion is a random
// percentage of them.
type VideoWatchConfig struct {
	Enabled        bool `json:"enabled" yaml:"enabled"`
	MinVideos      int  `json:"minVideos" yaml:"minVideos"`
	MaxVideos      int  `json:"maxVideos" yaml:"maxVideos"`
	VideoLengthMin int  `json:"videoLengthMin" yaml:"videoLengthMin"`
	VideoLengthMax int  `json:"videoLengthMax" yaml:"videoLengthMax"`
}

// SearchConfig tunes simulated search behavior. All delays in milliseconds.
type SearchConfig struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	MinSearches     int      `json:"minSearches" yaml:"minSearches"`
	MaxSearches     int      `json:"maxSearches" yaml:"maxSearches"`
	Queries         []string `json:"queries" yaml:"queries"`
	TypingDelayMin  int      `json:"typingDelayMin" yaml:"typingDelayMin"`
	TypingDelayMax  int      `json:"typingDelayMax" yaml:"typingDelayMax"`
	BrowseDelayMin  int      `json:"browseDelayMin" yaml:"browseDelayMin"`
	BrowseDelayMax  int      `json:"browseDelayMax" yaml:"browseDelayMax"`
	BetweenDelayMin int      `json:"betweenDelayMin" yaml:"betweenDelayMin"`
	BetweenDelayMax int      `json:"betweenDelayMax" yaml:"betweenDelayMax"`
}

// HumanizationConfig tunes the random pauses layered over every activity.
type HumanizationConfig struct {
	PauseProbability float64 `json:"pauseProbability" yaml:"pauseProbability"`
	PauseDurationMin int     `json:"pauseDurationMin" yaml:"pauseDurationMin"`
	PauseDurationMax int     `json:"pauseDurationMax" yaml:"pauseDurationMax"`
	WatchPctMin      float64 `json:"watchPctMin" yaml:"watchPctMin"`
	WatchPctMax      float64 `json:"watchPctMax" yaml:"watchPctMax"`
}

// ProfileConfig drives the profile-update phase. AvatarFolder is a
// directory of candidate images; BioFile holds one candidate bio per line.
type ProfileConfig struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	AvatarFolder string `json:"avatarFolder" yaml:"avatarFolder"`
	BioFile      string `json:"bioFile" yaml:"bioFile"`
	UpdateAvatar bool   `json:"updateAvatar" yaml:"updateAvatar"`
	UpdateBio    bool   `json:"updateBio" yaml:"updateBio"`
	DelayMin     int    `json:"delayMin" yaml:"delayMin"`
	DelayMax     int    `json:"delayMax" yaml:"delayMax"`
}

// MassActionsConfig drives the two mass phases.
type MassActionsConfig struct {
	Commenting    CommentingConfig    `json:"commenting" yaml:"commenting"`
	CommentLiking CommentLikingConfig `json:"commentLiking" yaml:"commentLiking"`
}

// CommentingConfig targets one video with one comment per account. The
// target may be given directly (VideoID) or as a share URL (VideoURL).
type CommentingConfig struct {
	Enabled         bool     `json:"enabled" yaml:"enabled"`
	VideoURL        string   `json:"videoUrl" yaml:"videoUrl"`
	VideoID         string   `json:"videoId" yaml:"videoId"`
	Comments        []string `json:"comments" yaml:"comments"`
	RandomizeOrder  bool     `json:"randomizeOrder" yaml:"randomizeOrder"`
	DelayBetweenMin int      `json:"delayBetweenAccountsMin" yaml:"delayBetweenAccountsMin"`
	DelayBetweenMax int      `json:"delayBetweenAccountsMax" yaml:"delayBetweenAccountsMax"`
}

// CommentLikingConfig likes one fixed comment from every account.
type CommentLikingConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	VideoURL        string `json:"videoUrl" yaml:"videoUrl"`
	VideoID         string `json:"videoId" yaml:"videoId"`
	CommentID       string `json:"commentId" yaml:"commentId"`
	DelayBetweenMin int    `json:"delayBetweenAccountsMin" yaml:"delayBetweenAccountsMin"`
	DelayBetweenMax int    `json:"delayBetweenAccountsMax" yaml:"delayBetweenAccountsMax"`
}

// PacingConfig tunes run-level delays shared by all phases.
type PacingConfig struct {
	BetweenPhasesMin   int `json:"betweenPhasesMin" yaml:"betweenPhasesMin"`
	BetweenPhasesMax   int `json:"betweenPhasesMax" yaml:"betweenPhasesMax"`
	BetweenStepsMin    int `json:"betweenStepsMin" yaml:"betweenStepsMin"`
	BetweenStepsMax    int `json:"betweenStepsMax" yaml:"betweenStepsMax"`
	BetweenAccountsMin int `json:"betweenAccountsMin" yaml:"betweenAccountsMin"`
	BetweenAccountsMax int `json:"betweenAccountsMax" yaml:"betweenAccountsMax"`
}

// ArchiveConfig controls the optional sqlite run archive.
type ArchiveConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// DefaultConfig returns the documented defaults. Accounts and phase enables
// are deliberately empty: a default config runs nothing.
func DefaultConfig() *Config {
	return &Config{
		Warming: WarmingConfig{
			Activities: ActivitiesConfig{
				Scroll: ScrollConfig{
					MinScrolls: 5,
					MaxScrolls: 15,
					SpeedMin:   500,
					SpeedMax:   1500,
				},
				VideoWatch: VideoWatchConfig{
					MinVideos:      3,
					MaxVideos:      10,
					VideoLengthMin: 10_000,
					VideoLengthMax: 60_000,
				},
				Search: SearchConfig{
					MinSearches:     1,
					MaxSearches:     3,
					TypingDelayMin:  800,
					TypingDelayMax:  2500,
					BrowseDelayMin:  3000,
					BrowseDelayMax:  10_000,
					BetweenDelayMin: 2000,
					BetweenDelayMax: 6000,
				},
			},
			Humanization: HumanizationConfig{
				PauseProbability: 0.3,
				PauseDurationMin: 1000,
				PauseDurationMax: 5000,
				WatchPctMin:      0.3,
				WatchPctMax:      0.9,
			},
		},
		Profile: ProfileConfig{
			UpdateAvatar: true,
			UpdateBio:    true,
			DelayMin:     2000,
			DelayMax:     6000,
		},
		MassActions: MassActionsConfig{
			Commenting: CommentingConfig{
				RandomizeOrder:  true,
				DelayBetweenMin: 5000,
				DelayBetweenMax: 15_000,
			},
			CommentLiking: CommentLikingConfig{
				DelayBetweenMin: 5000,
				DelayBetweenMax: 15_000,
			},
		},
		Pacing: PacingConfig{
			BetweenPhasesMin:   10_000,
			BetweenPhasesMax:   30_000,
			BetweenStepsMin:    3000,
			BetweenStepsMax:    8000,
			BetweenAccountsMin: 5000,
			BetweenAccountsMax: 15_000,
		},
		Archive: ArchiveConfig{
			Path: "tokdrift_runs.db",
		},
	}
}
