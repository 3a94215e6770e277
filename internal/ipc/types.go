package ipc

// StartRequest triggers daemon watcher startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops the daemon watcher.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// PlaybackState is the wire representation of an observed playback state.
type PlaybackState struct {
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	Title         string `json:"title"`
	ShuffleActive bool   `json:"shuffle_active"`
	RepeatActive  bool   `json:"repeat_active"`
	Status        string `json:"status"`
}

// BackendStatus describes availability of one media backend.
type BackendStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail"`
}

// DependencyStatus describes availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail"`
}

// StatusResponse represents combined daemon status information.
type StatusResponse struct {
	Running       bool               `json:"running"`
	Backend       string             `json:"backend"`
	NowPlaying    PlaybackState      `json:"now_playing"`
	PlaylistDir   string             `json:"playlist_dir"`
	JournalDBPath string             `json:"journal_db_path"`
	LockPath      string             `json:"lock_path"`
	Backends      []BackendStatus    `json:"backends"`
	Dependencies  []DependencyStatus `json:"dependencies"`
	PID           int                `json:"pid"`
}

// ControlRequest dispatches a transport action (play, pause, stop, next,
// previous) to the active backend.
type ControlRequest struct {
	Action string `json:"action"`
}

// ControlResponse reports the applied action and backend.
type ControlResponse struct {
	Action  string `json:"action"`
	Backend string `json:"backend"`
}

// NowPlayingRequest fetches the current playback state.
type NowPlayingRequest struct{}

// NowPlayingResponse carries the current playback state and its source.
type NowPlayingResponse struct {
	State   PlaybackState `json:"state"`
	Backend string        `json:"backend"`
}

// PlaylistSummary is the wire representation of one discovered playlist.
type PlaylistSummary struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Tracks int    `json:"tracks"`
}

// PlaylistsRequest lists discovered playlists.
type PlaylistsRequest struct{}

// PlaylistsResponse contains discovered playlists.
type PlaylistsResponse struct {
	Playlists []PlaylistSummary `json:"playlists"`
}

// PlaylistStartRequest starts a playlist by name.
type PlaylistStartRequest struct {
	Name string `json:"name"`
}

// PlaylistStartResponse reports the started playlist.
type PlaylistStartResponse struct {
	Playlist PlaylistSummary `json:"playlist"`
}

// HistoryEvent is the wire representation of one journaled state change.
type HistoryEvent struct {
	ID         int64         `json:"id"`
	EventID    string        `json:"event_id"`
	Backend    string        `json:"backend"`
	State      PlaybackState `json:"state"`
	OccurredAt string        `json:"occurred_at"`
}

// HistoryRequest fetches journaled playback events, newest first. A limit of
// zero returns everything.
type HistoryRequest struct {
	Limit int `json:"limit"`
}

// HistoryResponse contains journaled playback events.
type HistoryResponse struct {
	Events []HistoryEvent `json:"events"`
}

// HistoryClearRequest removes all journaled events.
type HistoryClearRequest struct{}

// HistoryClearResponse acknowledges the clear.
type HistoryClearResponse struct {
	Cleared bool `json:"cleared"`
}

// DatabaseHealthRequest fetches detailed database diagnostics.
type DatabaseHealthRequest struct{}

// DatabaseHealthResponse reports journal database health information.
type DatabaseHealthResponse struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	TableExists      bool     `json:"table_exists"`
	ColumnsPresent   []string `json:"columns_present"`
	MissingColumns   []string `json:"missing_columns"`
	IntegrityCheck   bool     `json:"integrity_check"`
	TotalEvents      int      `json:"total_events"`
	Error            string   `json:"error"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
