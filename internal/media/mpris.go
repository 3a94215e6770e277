package media

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"mediabridge/internal/logging"
)

const (
	mprisPrefix          = "org.mpris.MediaPlayer2."
	mprisObjectPath      = "/org/mpris/MediaPlayer2"
	mprisPlayerInterface = "org.mpris.MediaPlayer2.Player"
)

// busConn abstracts the D-Bus connection so tests can stand in for a live bus.
type busConn interface {
	ListNames() ([]string, error)
	Object(dest string) mprisObject
	Close() error
}

// mprisObject is the subset of dbus.BusObject the controller needs.
type mprisObject interface {
	CallMethod(ctx context.Context, method string) error
	Property(name string) (dbus.Variant, error)
}

// MPRISController drives Linux media players over the session D-Bus.
type MPRISController struct {
	logger *slog.Logger
	conn   busConn

	mu         sync.Mutex
	player     mprisObject
	playerName string
}

// NewMPRISController connects to the session bus and attaches to the best
// available MPRIS player: the first one currently playing, else the first one
// found. When no player is present the controller stays attached to nothing
// and re-probes on the next call.
func NewMPRISController(logger *slog.Logger) (*MPRISController, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return newMPRISController(logger, &liveBusConn{conn: conn}), nil
}

func newMPRISController(logger *slog.Logger, conn busConn) *MPRISController {
	c := &MPRISController{
		logger: logging.NewComponentLogger(logger, "mpris"),
		conn:   conn,
	}
	if err := c.attach(); err != nil {
		c.logger.Debug("no MPRIS player attached at startup", logging.Error(err))
	}
	return c
}

// Name identifies the backend.
func (c *MPRISController) Name() string { return BackendMPRIS }

// attach scans bus names for MPRIS players and selects one. Callers must not
// hold c.mu.
func (c *MPRISController) attach() error {
	names, err := c.conn.ListNames()
	if err != nil {
		return fmt.Errorf("list bus names: %w", err)
	}

	players := make([]string, 0, 4)
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	sort.Strings(players)
	if len(players) == 0 {
		return ErrNoActivePlayer
	}

	selected := ""
	for _, name := range players {
		obj := c.conn.Object(name)
		variant, err := obj.Property(mprisPlayerInterface + ".PlaybackStatus")
		if err != nil {
			c.logger.Debug("skipping player without playback status",
				logging.String("player", name), logging.Error(err))
			continue
		}
		if status, ok := variant.Value().(string); ok && status == "Playing" {
			selected = name
			break
		}
	}
	if selected == "" {
		// No player is actively playing; fall back to the first one found.
		selected = players[0]
	}

	c.mu.Lock()
	c.player = c.conn.Object(selected)
	c.playerName = selected
	c.mu.Unlock()

	c.logger.Debug("attached to MPRIS player", logging.String("player", selected))
	return nil
}

func (c *MPRISController) currentPlayer() (mprisObject, error) {
	c.mu.Lock()
	player := c.player
	c.mu.Unlock()
	if player != nil {
		return player, nil
	}
	if err := c.attach(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player, nil
}

func (c *MPRISController) call(ctx context.Context, method string) error {
	player, err := c.currentPlayer()
	if err != nil {
		return err
	}
	if err := player.CallMethod(ctx, mprisPlayerInterface+"."+method); err != nil {
		// The player may have exited; drop it so the next call re-probes.
		c.mu.Lock()
		c.player = nil
		c.playerName = ""
		c.mu.Unlock()
		return fmt.Errorf("mpris %s: %w", strings.ToLower(method), err)
	}
	return nil
}

func (c *MPRISController) Play(ctx context.Context) error     { return c.call(ctx, "Play") }
func (c *MPRISController) Pause(ctx context.Context) error    { return c.call(ctx, "Pause") }
func (c *MPRISController) Stop(ctx context.Context) error     { return c.call(ctx, "Stop") }
func (c *MPRISController) Next(ctx context.Context) error     { return c.call(ctx, "Next") }
func (c *MPRISController) Previous(ctx context.Context) error { return c.call(ctx, "Previous") }

// State reads the attached player's metadata and playback properties.
// Missing optional properties (Shuffle, LoopStatus) are tolerated; a missing
// player degrades to the default state.
func (c *MPRISController) State(ctx context.Context) (PlaybackState, error) {
	player, err := c.currentPlayer()
	if err != nil {
		return DefaultState(), nil
	}

	state := DefaultState()

	statusVariant, err := player.Property(mprisPlayerInterface + ".PlaybackStatus")
	if err != nil {
		c.mu.Lock()
		c.player = nil
		c.playerName = ""
		c.mu.Unlock()
		return DefaultState(), nil
	}
	if status, ok := statusVariant.Value().(string); ok {
		state.Status = parseMPRISStatus(status)
	}

	if metaVariant, err := player.Property(mprisPlayerInterface + ".Metadata"); err == nil {
		if meta, ok := metaVariant.Value().(map[string]dbus.Variant); ok {
			state.Artist = joinArtists(meta["xesam:artist"])
			state.Album = variantString(meta["xesam:album"])
			state.Title = variantString(meta["xesam:title"])
		}
	}

	// VLC advertises Shuffle with the wrong signature; accept any scalar
	// that converts to a bool.
	if shuffleVariant, err := player.Property(mprisPlayerInterface + ".Shuffle"); err == nil {
		state.ShuffleActive = variantBool(shuffleVariant)
	}
	if loopVariant, err := player.Property(mprisPlayerInterface + ".LoopStatus"); err == nil {
		if loop, ok := loopVariant.Value().(string); ok {
			state.RepeatActive = loop == "Track"
		}
	}

	return state, nil
}

// PlayerName returns the bus name of the attached player, if any.
func (c *MPRISController) PlayerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerName
}

// Close releases the bus connection.
func (c *MPRISController) Close() error {
	return c.conn.Close()
}

func parseMPRISStatus(value string) Status {
	switch value {
	case "Playing":
		return StatusPlaying
	case "Paused":
		return StatusPaused
	case "Stopped":
		return StatusStopped
	default:
		return StatusUnknown
	}
}

func joinArtists(variant dbus.Variant) string {
	switch v := variant.Value().(type) {
	case []string:
		return strings.Join(v, ", ")
	case string:
		return v
	default:
		return ""
	}
}

func variantString(variant dbus.Variant) string {
	if s, ok := variant.Value().(string); ok {
		return s
	}
	return ""
}

func variantBool(variant dbus.Variant) bool {
	switch v := variant.Value().(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int32:
		return v != 0
	default:
		return false
	}
}

// liveBusConn adapts *dbus.Conn to the busConn interface.
type liveBusConn struct {
	conn *dbus.Conn
}

func (b *liveBusConn) ListNames() ([]string, error) {
	var names []string
	err := b.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (b *liveBusConn) Object(dest string) mprisObject {
	return &liveBusObject{obj: b.conn.Object(dest, mprisObjectPath)}
}

func (b *liveBusConn) Close() error {
	return b.conn.Close()
}

type liveBusObject struct {
	obj dbus.BusObject
}

func (o *liveBusObject) CallMethod(ctx context.Context, method string) error {
	return o.obj.CallWithContext(ctx, method, 0).Err
}

func (o *liveBusObject) Property(name string) (dbus.Variant, error) {
	return o.obj.GetProperty(name)
}
