package journal

import (
	"time"

	"mediabridge/internal/media"
)

// Event records one observed playback state change.
type Event struct {
	ID            int64
	EventID       string
	Backend       string
	Title         string
	Artist        string
	Album         string
	Status        media.Status
	ShuffleActive bool
	RepeatActive  bool
	OccurredAt    time.Time
}

// State converts the event back into the playback state it recorded.
func (e Event) State() media.PlaybackState {
	return media.PlaybackState{
		Artist:        e.Artist,
		Album:         e.Album,
		Title:         e.Title,
		ShuffleActive: e.ShuffleActive,
		RepeatActive:  e.RepeatActive,
		Status:        e.Status,
	}
}

// DatabaseHealth reports diagnostic information about the journal database.
type DatabaseHealth struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	TableExists      bool     `json:"table_exists"`
	ColumnsPresent   []string `json:"columns_present,omitempty"`
	MissingColumns   []string `json:"missing_columns,omitempty"`
	TotalEvents      int      `json:"total_events"`
	IntegrityCheck   bool     `json:"integrity_check"`
	Error            string   `json:"error,omitempty"`
}
