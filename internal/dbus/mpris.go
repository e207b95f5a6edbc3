package dbus

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/notch/internal/platform"
)

const (
	mprisPrefix    = "org.mpris.MediaPlayer2."
	mprisPath      = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisRoot      = "org.mpris.MediaPlayer2"
	mprisPlayer    = "org.mpris.MediaPlayer2.Player"
	mprisRaise     = mprisRoot + ".Raise"
	statusPlaying  = "Playing"
	metadataTitle  = "xesam:title"
	metadataArtist = "xesam:artist"
)

// Player is an MPRIS player on the bus.
type Player struct {
	BusName  string
	Identity string
}

// Matches reports whether any of patterns is a case-insensitive substring of
// the bus name suffix or the identity.
func (p Player) Matches(patterns []string) bool {
	name := strings.ToLower(strings.TrimPrefix(p.BusName, mprisPrefix))
	identity := strings.ToLower(p.Identity)
	for _, pat := range patterns {
		pat = strings.ToLower(pat)
		if pat == "" {
			continue
		}
		if strings.Contains(name, pat) || strings.Contains(identity, pat) {
			return true
		}
	}
	return false
}

// MPRIS is the media source and window directory backed by MPRIS players.
// Current runs off the UI loop, so the player filter is guarded.
type MPRIS struct {
	session *Session

	mu      sync.RWMutex
	players []string
}

var (
	_ platform.Source    = (*MPRIS)(nil)
	_ platform.Directory = (*MPRIS)(nil)
)

// NewMPRIS creates a source that follows players matching any of players.
// An empty list follows every player.
func NewMPRIS(session *Session, players []string) *MPRIS {
	return &MPRIS{session: session, players: players}
}

// SetPlayers replaces the player filter.
func (m *MPRIS) SetPlayers(players []string) {
	m.mu.Lock()
	m.players = players
	m.mu.Unlock()
}

func (m *MPRIS) filter() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.players
}

// Players lists the MPRIS players on the bus with their identities.
func (m *MPRIS) Players(ctx context.Context) ([]Player, error) {
	if err := m.session.ready(); err != nil {
		return nil, err
	}
	names, err := m.session.names(ctx)
	if err != nil {
		return nil, err
	}

	var players []Player
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		p := Player{BusName: name, Identity: strings.TrimPrefix(name, mprisPrefix)}
		if v, err := m.session.property(ctx, name, mprisPath, mprisRoot, "Identity"); err == nil {
			if s, ok := v.Value().(string); ok && s != "" {
				p.Identity = s
			}
		}
		players = append(players, p)
	}
	return players, nil
}

// Current returns the track of the first matching player that is playing.
func (m *MPRIS) Current(ctx context.Context) (platform.Track, error) {
	players, err := m.Players(ctx)
	if err != nil {
		return platform.Track{}, err
	}

	filter := m.filter()
	for _, p := range players {
		if len(filter) > 0 && !p.Matches(filter) {
			continue
		}

		status, err := m.session.property(ctx, p.BusName, mprisPath, mprisPlayer, "PlaybackStatus")
		if err != nil {
			m.session.logger.Debug("skipping player", "player", p.BusName, "error", err)
			continue
		}
		if s, _ := status.Value().(string); s != statusPlaying {
			continue
		}

		meta, err := m.session.property(ctx, p.BusName, mprisPath, mprisPlayer, "Metadata")
		if err != nil {
			return platform.Track{}, err
		}
		md, _ := meta.Value().(map[string]dbus.Variant)
		return TrackFromMetadata(md, p.Identity), nil
	}
	return platform.Track{}, nil
}

// TrackFromMetadata builds a track from MPRIS metadata. The title is cleaned
// of a trailing " - <identity>" and is empty when it only names the player.
func TrackFromMetadata(md map[string]dbus.Variant, identity string) platform.Track {
	var t platform.Track
	if v, ok := md[metadataTitle]; ok {
		if s, ok := v.Value().(string); ok {
			t.Title = platform.CleanLabel(s, []string{identity})
		}
	}
	if v, ok := md[metadataArtist]; ok {
		switch a := v.Value().(type) {
		case []string:
			t.Detail = strings.Join(a, ", ")
		case string:
			t.Detail = a
		}
	}
	if t.Title == "" {
		return platform.Track{}
	}
	return t
}

// Windows lists players as windows titled by their identity.
func (m *MPRIS) Windows(ctx context.Context) ([]platform.Window, error) {
	players, err := m.Players(ctx)
	if err != nil {
		return nil, err
	}
	windows := make([]platform.Window, 0, len(players))
	for _, p := range players {
		w := platform.Window{ID: p.BusName, Title: p.Identity}
		if pid, err := m.session.pid(ctx, p.BusName); err == nil {
			w.PID = pid
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// Activate raises the player's window.
func (m *MPRIS) Activate(ctx context.Context, w platform.Window) error {
	if err := m.session.ready(); err != nil {
		return err
	}
	obj := m.session.conn.Object(w.ID, mprisPath)
	if err := obj.CallWithContext(ctx, mprisRaise, 0).Err; err != nil {
		return fmt.Errorf("failed to raise %s: %w", w.ID, err)
	}
	m.session.logger.Debug("raised player", "player", w.ID, "pid", w.PID)
	return nil
}
