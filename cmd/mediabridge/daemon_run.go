package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"mediabridge/internal/config"
	"mediabridge/internal/daemon"
	"mediabridge/internal/daemonctl"
	"mediabridge/internal/deps"
	"mediabridge/internal/ipc"
	"mediabridge/internal/journal"
	"mediabridge/internal/logging"
	"mediabridge/internal/playlist"
)

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:          "daemon",
		Short:        "Run the mediabridge daemon (internal)",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemonProcess(cmd.Context(), ctx)
		},
	}
}

func runDaemonProcess(cmdCtx context.Context, ctx *commandContext) error {
	if ctx == nil {
		return fmt.Errorf("command context is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := filepath.Join(cfg.Paths.LogDir, "mediabridge.log")
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, daemonctl.PIDFileName)
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := journal.Open(cfg)
	if err != nil {
		logger.Error("open journal store", logging.Error(err))
		return err
	}
	defer store.Close()

	registry, err := playlist.NewRegistry(logger, cfg.Paths.PlaylistDir, playlistOpener(cfg))
	if err != nil {
		return fmt.Errorf("build playlist registry: %w", err)
	}
	watcher, err := playlist.NewWatcher(logger, registry)
	if err != nil {
		logger.Warn("watch playlist directory", logging.Error(err))
	} else {
		defer watcher.Close()
	}

	d, err := daemon.New(cfg, store, registry, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	socketPath := buildSocketPath(ctx, cfg)
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Warn("daemon start", logging.Error(err))
	}

	<-signalCtx.Done()
	logger.Info("mediabridge daemon shutting down")
	return nil
}

func playlistOpener(cfg *config.Config) string {
	if cfg != nil && strings.TrimSpace(cfg.Player.Opener) != "" {
		return cfg.Player.Opener
	}
	return deps.DefaultOpener()
}

func buildSocketPath(ctx *commandContext, cfg *config.Config) string {
	if ctx != nil && ctx.socketFlag != nil {
		if socket := strings.TrimSpace(*ctx.socketFlag); socket != "" {
			return socket
		}
	}
	if cfg == nil {
		return filepath.Join(os.TempDir(), "mediabridge.sock")
	}
	return filepath.Join(cfg.Paths.LogDir, "mediabridge.sock")
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
