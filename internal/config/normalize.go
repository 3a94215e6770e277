package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayer()
	c.normalizeNotifications()
	if err := c.normalizePackaging(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.PlaylistDir) == "" {
		c.Paths.PlaylistDir = defaultPlaylistDir
	}
	if c.Paths.PlaylistDir, err = expandPath(c.Paths.PlaylistDir); err != nil {
		return fmt.Errorf("paths.playlist_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayer() {
	c.Player.Method = strings.ToLower(strings.TrimSpace(c.Player.Method))
	if c.Player.Method == "" {
		c.Player.Method = defaultPlayerMethod
	}
	c.Player.KeyTool = strings.TrimSpace(c.Player.KeyTool)
	if c.Player.KeyTool == "" {
		c.Player.KeyTool = defaultKeyTool
	}
	c.Player.Opener = strings.TrimSpace(c.Player.Opener)
	if c.Player.PollInterval <= 0 {
		c.Player.PollInterval = defaultPollInterval
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizePackaging() error {
	var err error
	if strings.TrimSpace(c.Packaging.SourceDir) == "" {
		c.Packaging.SourceDir = defaultPackagingSourceDir
	}
	if c.Packaging.SourceDir, err = expandPath(c.Packaging.SourceDir); err != nil {
		return fmt.Errorf("packaging.source_dir: %w", err)
	}
	// OutputDir stays relative to SourceDir when not absolute.
	c.Packaging.OutputDir = strings.TrimSpace(c.Packaging.OutputDir)
	if c.Packaging.OutputDir == "" {
		c.Packaging.OutputDir = defaultPackagingOutputDir
	}
	c.Packaging.Installer = strings.TrimSpace(c.Packaging.Installer)
	if c.Packaging.Installer == "" {
		c.Packaging.Installer = defaultPackagingInstaller
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
