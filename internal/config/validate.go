package config

import (
	"errors"
	"fmt"
)

var knownPlayerMethods = map[string]struct{}{
	"auto":        {},
	"mpris":       {},
	"media_keys":  {},
	"applescript": {},
}

var knownLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlayer() error {
	if _, ok := knownPlayerMethods[c.Player.Method]; !ok {
		return fmt.Errorf("player.method must be one of auto, mpris, media_keys, applescript (got %q)", c.Player.Method)
	}
	if c.Player.PollInterval <= 0 {
		return errors.New("player.poll_interval must be positive")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.MaxEvents < 0 {
		return errors.New("journal.max_events must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := knownLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
