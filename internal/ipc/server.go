package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"log/slog"

	"mediabridge/internal/daemon"
	"mediabridge/internal/logging"
	"mediabridge/internal/media"
	"mediabridge/internal/playlist"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("MediaBridge", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldImpact, "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldImpact, "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually or rerun mediabridge stop"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func fromPlaybackState(state media.PlaybackState) PlaybackState {
	return PlaybackState{
		Artist:        state.Artist,
		Album:         state.Album,
		Title:         state.Title,
		ShuffleActive: state.ShuffleActive,
		RepeatActive:  state.RepeatActive,
		Status:        string(state.Status),
	}
}

func fromPlaylist(pl playlist.Playlist) PlaylistSummary {
	return PlaylistSummary{
		Name:   pl.Name,
		Path:   pl.Path,
		Tracks: pl.TrackCount(),
	}
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	s.log().Debug("daemon start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "daemon started"
	s.log().Info("daemon started via IPC",
		logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.Backend = status.Backend
	resp.NowPlaying = fromPlaybackState(status.NowPlaying)
	resp.PlaylistDir = status.PlaylistDir
	resp.JournalDBPath = status.JournalDBPath
	resp.LockPath = status.LockFilePath
	resp.PID = status.PID

	for _, descriptor := range s.daemon.Backends() {
		resp.Backends = append(resp.Backends, BackendStatus{
			Name:        descriptor.Name,
			Description: descriptor.Description,
			Available:   descriptor.Available,
			Detail:      descriptor.Detail,
		})
	}
	for _, dep := range s.daemon.Dependencies() {
		resp.Dependencies = append(resp.Dependencies, DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		})
	}
	return nil
}

func (s *service) Control(req ControlRequest, resp *ControlResponse) error {
	action, ok := media.ParseAction(req.Action)
	if !ok {
		return fmt.Errorf("unknown media action %q", req.Action)
	}
	if err := s.daemon.Control(s.ctx, action); err != nil {
		return err
	}
	resp.Action = string(action)
	resp.Backend = s.daemon.Backend()
	return nil
}

func (s *service) NowPlaying(_ NowPlayingRequest, resp *NowPlayingResponse) error {
	state, backend, err := s.daemon.NowPlaying(s.ctx)
	if err != nil {
		return err
	}
	resp.State = fromPlaybackState(state)
	resp.Backend = backend
	return nil
}

func (s *service) Playlists(_ PlaylistsRequest, resp *PlaylistsResponse) error {
	playlists, err := s.daemon.Playlists()
	if err != nil {
		return err
	}
	resp.Playlists = make([]PlaylistSummary, 0, len(playlists))
	for _, pl := range playlists {
		resp.Playlists = append(resp.Playlists, fromPlaylist(pl))
	}
	return nil
}

func (s *service) PlaylistStart(req PlaylistStartRequest, resp *PlaylistStartResponse) error {
	s.log().Debug("playlist start requested", logging.String(logging.FieldPlaylist, req.Name))
	pl, err := s.daemon.StartPlaylist(s.ctx, req.Name)
	if err != nil {
		return err
	}
	resp.Playlist = fromPlaylist(pl)
	s.log().Info("playlist started via IPC",
		logging.String(logging.FieldEventType, "playlist_start"),
		logging.String(logging.FieldPlaylist, pl.Name))
	return nil
}

func (s *service) History(req HistoryRequest, resp *HistoryResponse) error {
	events, err := s.daemon.History(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Events = make([]HistoryEvent, 0, len(events))
	for _, event := range events {
		resp.Events = append(resp.Events, HistoryEvent{
			ID:         event.ID,
			EventID:    event.EventID,
			Backend:    event.Backend,
			State:      fromPlaybackState(event.State()),
			OccurredAt: event.OccurredAt.Format(time.RFC3339),
		})
	}
	return nil
}

func (s *service) HistoryClear(_ HistoryClearRequest, resp *HistoryClearResponse) error {
	s.log().Debug("history clear requested")
	if err := s.daemon.ClearHistory(s.ctx); err != nil {
		return err
	}
	resp.Cleared = true
	s.log().Info("history cleared",
		logging.String(logging.FieldEventType, "history_clear"))
	return nil
}

func (s *service) DatabaseHealth(_ DatabaseHealthRequest, resp *DatabaseHealthResponse) error {
	health, err := s.daemon.DatabaseHealth(s.ctx)
	if err != nil && health.Error == "" {
		return err
	}
	resp.DBPath = health.DBPath
	resp.DatabaseExists = health.DatabaseExists
	resp.DatabaseReadable = health.DatabaseReadable
	resp.TableExists = health.TableExists
	resp.ColumnsPresent = append(resp.ColumnsPresent, health.ColumnsPresent...)
	resp.MissingColumns = append(resp.MissingColumns, health.MissingColumns...)
	resp.IntegrityCheck = health.IntegrityCheck
	resp.TotalEvents = health.TotalEvents
	resp.Error = health.Error
	if err != nil {
		return err
	}
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}
