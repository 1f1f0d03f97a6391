package config

import (
	"github.com/caarlos0/env/v11"
)

// envOverrides are the settings the environment may override after the
// file is loaded. Secrets in particular belong here rather than on disk.
type envOverrides struct {
	MSToken     string `env:"TOKDRIFT_MS_TOKEN"`
	ArchivePath string `env:"TOKDRIFT_ARCHIVE"`
}

// ApplyEnv layers environment overrides onto a loaded config. A shared
// TOKDRIFT_MS_TOKEN fills only accounts that have none of their own.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return &Error{Path: "env", Reason: "invalid override", Err: err}
	}
	if o.MSToken != "" {
		for i := range c.Accounts {
			if c.Accounts[i].MSToken == "" {
				c.Accounts[i].MSToken = o.MSToken
			}
		}
	}
	if o.ArchivePath != "" {
		c.Archive.Path = o.ArchivePath
	}
	return nil
}
