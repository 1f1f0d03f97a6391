package activity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tokdrift/internal/account"
	"tokdrift/internal/config"
	"tokdrift/internal/humanize"
)

// ProfileAssets are the candidate avatars and bio lines shared by every
// session of one profile-update phase. Loaded once per batch, never per
// account.
type ProfileAssets struct {
	Avatars [][]byte
	Bios    []string
}

// LoadProfileAssets reads the candidate pools from disk. A missing folder
// or file yields an empty pool and a log line, not an error: the
// corresponding sub-update is simply skipped for every session.
func LoadProfileAssets(cfg config.ProfileConfig, logger *zap.Logger) ProfileAssets {
	if logger == nil {
		logger = zap.NewNop()
	}
	var assets ProfileAssets

	if cfg.UpdateAvatar && cfg.AvatarFolder != "" {
		entries, err := os.ReadDir(cfg.AvatarFolder)
		if err != nil {
			logger.Warn("avatar folder unreadable, skipping avatar updates",
				zap.String("folder", cfg.AvatarFolder), zap.Error(err))
		} else {
			for _, e := range entries {
				if e.IsDir() || !isImageFile(e.Name()) {
					continue
				}
				data, err := os.ReadFile(filepath.Join(cfg.AvatarFolder, e.Name()))
				if err != nil {
					logger.Warn("avatar unreadable", zap.String("file", e.Name()), zap.Error(err))
					continue
				}
				assets.Avatars = append(assets.Avatars, data)
			}
		}
	}

	if cfg.UpdateBio && cfg.BioFile != "" {
		data, err := os.ReadFile(cfg.BioFile)
		if err != nil {
			logger.Warn("bio file unreadable, skipping bio updates",
				zap.String("file", cfg.BioFile), zap.Error(err))
		} else {
			for _, line := range strings.Split(string(data), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					assets.Bios = append(assets.Bios, line)
				}
			}
		}
	}
	return assets
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// Profile updates one account's avatar and bio from the shared candidate
// pools.
type Profile struct {
	cfg    config.ProfileConfig
	assets ProfileAssets
	deps   Deps
}

// NewProfile builds the profile executor over pre-loaded assets.
func NewProfile(cfg config.ProfileConfig, assets ProfileAssets, deps Deps) *Profile {
	return &Profile{cfg: cfg, assets: assets, deps: deps}
}

// Run performs the enabled sub-updates for one session. An empty candidate
// pool skips that sub-update; a dispatch failure fails the session.
func (p *Profile) Run(ctx context.Context, s *account.Session) (string, error) {
	fac := p.deps.Facade(s)
	var done []string

	if p.cfg.UpdateAvatar && len(p.assets.Avatars) > 0 {
		if err := p.wait(ctx); err != nil {
			return "", err
		}
		avatar, err := humanize.Choice(p.deps.Engine, p.assets.Avatars)
		if err != nil {
			return "", &Error{Account: s.Username(), Op: "updateAvatar", Err: err}
		}
		d, err := fac.BuildUpdateAvatar(avatar)
		if err != nil {
			return "", &Error{Account: s.Username(), Op: "updateAvatar", Err: err}
		}
		if _, err := fac.Execute(ctx, d); err != nil {
			return "", &Error{Account: s.Username(), Op: "updateAvatar", Err: err}
		}
		done = append(done, "avatar")
	}

	if p.cfg.UpdateBio && len(p.assets.Bios) > 0 {
		if err := p.wait(ctx); err != nil {
			return "", err
		}
		bio, err := humanize.Choice(p.deps.Engine, p.assets.Bios)
		if err != nil {
			return "", &Error{Account: s.Username(), Op: "updateBio", Err: err}
		}
		d, err := fac.BuildUpdateBio(bio)
		if err != nil {
			return "", &Error{Account: s.Username(), Op: "updateBio", Err: err}
		}
		if _, err := fac.Execute(ctx, d); err != nil {
			return "", &Error{Account: s.Username(), Op: "updateBio", Err: err}
		}
		done = append(done, "bio")
	}

	if len(done) == 0 {
		return "nothing to update", nil
	}
	return fmt.Sprintf("updated %s", strings.Join(done, "+")), nil
}

func (p *Profile) wait(ctx context.Context) error {
	return p.deps.Sleeper.Sleep(ctx, p.deps.Engine.Delay(p.cfg.DelayMin, p.cfg.DelayMax))
}
