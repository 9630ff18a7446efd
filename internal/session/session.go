// Package session is the façade the UI layers talk to. It translates user
// intents into station lookups against the library, playback controller
// calls, and write-through library updates, and applies the
// resume-last-station policy.
package session

import (
	"context"
	"fmt"

	"github.com/tmaehler/airband/internal/core"
	apperrors "github.com/tmaehler/airband/internal/errors"
	"github.com/tmaehler/airband/internal/player"
	"github.com/tmaehler/airband/internal/resolve"
	"github.com/tmaehler/airband/internal/store"
)

// Match pairs a station with its index in the playlist it came from.
type Match struct {
	Index   int
	Station core.Station
}

// Session coordinates the library store and the playback controller.
// Commands are serial user actions; Session adds no locking of its own
// beyond what the store and controller already guarantee.
type Session struct {
	store    *store.Store
	ctrl     *player.Controller
	resolver *resolve.Resolver // nil disables playlist-URL resolution

	verbose bool
	logf    func(format string, args ...interface{})
}

// New creates a session over the given store and controller. resolver may
// be nil to play station URLs as-is.
func New(st *store.Store, ctrl *player.Controller, resolver *resolve.Resolver) *Session {
	return &Session{
		store:    st,
		ctrl:     ctrl,
		resolver: resolver,
	}
}

// SetVerbose enables diagnostic logging through logf.
func (s *Session) SetVerbose(verbose bool, logf func(format string, args ...interface{})) {
	s.verbose = verbose
	s.logf = logf
	s.ctrl.SetVerbose(verbose, logf)
}

func (s *Session) debugf(format string, args ...interface{}) {
	if s.verbose && s.logf != nil {
		s.logf(format, args...)
	}
}

// Library returns the current library snapshot.
func (s *Session) Library() *store.Library {
	return s.store.Library()
}

// LibraryPath returns the durable library file location.
func (s *Session) LibraryPath() string {
	return s.store.Path()
}

// CurrentPlaylist returns the active playlist.
func (s *Session) CurrentPlaylist() core.Playlist {
	return s.store.Library().CurrentPlaylist()
}

// PlayIndex starts playback of station index in the active playlist.
// Playback that started but could not be recorded durably returns the
// station together with an error satisfying errors.Is(err, ErrLibraryPersist).
func (s *Session) PlayIndex(ctx context.Context, index int) (core.Station, error) {
	lib := s.store.Library()
	pl := lib.CurrentPlaylist()
	st, err := pl.Station(index)
	if err != nil {
		return core.Station{}, fmt.Errorf("%w: %v", apperrors.ErrStationNotFound, err)
	}
	return st, s.play(ctx, pl.Name, index, st)
}

// PlayQuery starts playback of the first station in the active playlist
// whose name matches query.
func (s *Session) PlayQuery(ctx context.Context, query string) (core.Station, error) {
	pl := s.CurrentPlaylist()
	for i, st := range pl.Find(query) {
		return st, s.play(ctx, pl.Name, i, st)
	}
	return core.Station{}, fmt.Errorf("%w: no station matches %q in playlist %q", apperrors.ErrStationNotFound, query, pl.Name)
}

// play resolves the stream URL, starts the player, and records the
// last-played snapshot. The snapshot is captured only after the spawn
// succeeded, and always records the station's library URL, not the
// resolved stream URL.
func (s *Session) play(ctx context.Context, playlist string, index int, st core.Station) error {
	target := st
	if s.resolver != nil {
		streamURL, err := s.resolver.StreamURL(ctx, st.URL)
		if err != nil {
			s.debugf("could not resolve %s, playing raw URL: %v", st.URL, err)
		} else if streamURL != st.URL {
			s.debugf("resolved %s -> %s", st.URL, streamURL)
		}
		target.URL = streamURL
	}

	if err := s.ctrl.Play(ctx, target); err != nil {
		return err
	}

	return s.store.Update(func(l *store.Library) (*store.Library, error) {
		return l.WithLastPlayed(store.LastPlayed{
			Playlist: playlist,
			Index:    index,
			Name:     st.Name,
			URL:      st.URL,
		}), nil
	})
}

// Stop stops playback. Stopping an idle session is a successful no-op.
func (s *Session) Stop(ctx context.Context) error {
	return s.ctrl.Stop(ctx)
}

// Status returns a snapshot of the playback session. It never blocks.
func (s *Session) Status() core.Snapshot {
	return s.ctrl.Status()
}

// Search returns the stations in the active playlist whose names match
// query, in playlist order.
func (s *Session) Search(query string) []Match {
	var matches []Match
	for i, st := range s.CurrentPlaylist().Find(query) {
		matches = append(matches, Match{Index: i, Station: st})
	}
	return matches
}

// AddStation validates and appends a station to the active playlist.
// The returned flag reports an exact duplicate, which is added anyway.
func (s *Session) AddStation(name, rawURL string, tags ...string) (core.Station, bool, error) {
	st, err := core.NewStation(name, rawURL, tags...)
	if err != nil {
		return core.Station{}, false, err
	}

	var dup bool
	err = s.store.Update(func(l *store.Library) (*store.Library, error) {
		next, d, err := l.WithStationAdded(l.Current, st)
		dup = d
		return next, err
	})
	return st, dup, err
}

// RemoveStation deletes station index from the active playlist.
func (s *Session) RemoveStation(index int) (core.Station, error) {
	var removed core.Station
	err := s.store.Update(func(l *store.Library) (*store.Library, error) {
		st, err := l.CurrentPlaylist().Station(index)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStationNotFound, err)
		}
		removed = st
		return l.WithStationRemoved(l.Current, index)
	})
	return removed, err
}

// SwitchPlaylist changes the active playlist. It deliberately does not
// stop current playback: browsing another playlist should not interrupt
// what is streaming.
func (s *Session) SwitchPlaylist(name string) error {
	return s.store.Update(func(l *store.Library) (*store.Library, error) {
		return l.WithCurrent(name)
	})
}

// CreatePlaylist adds a new empty playlist.
func (s *Session) CreatePlaylist(name string) error {
	return s.store.Update(func(l *store.Library) (*store.Library, error) {
		return l.WithPlaylistCreated(name)
	})
}

// DeletePlaylist removes a playlist. Deleting the active playlist falls
// back to the first remaining one.
func (s *Session) DeletePlaylist(name string) error {
	return s.store.Update(func(l *store.Library) (*store.Library, error) {
		return l.WithPlaylistDeleted(name)
	})
}

// LastPlayed returns the recorded last-played snapshot and whether it
// still resolves to a station in the library.
func (s *Session) LastPlayed() (*store.LastPlayed, bool) {
	lib := s.store.Library()
	if lib.LastPlayed == nil {
		return nil, false
	}
	_, ok := lib.ResolveLastPlayed()
	return lib.LastPlayed, ok
}

// Resume re-plays the last successfully started station. The stored
// snapshot must still resolve; a stale snapshot is reported, never played.
func (s *Session) Resume(ctx context.Context) (core.Station, error) {
	lib := s.store.Library()
	lp := lib.LastPlayed
	if lp == nil {
		return core.Station{}, apperrors.ErrNoLastPlayed
	}
	st, ok := lib.ResolveLastPlayed()
	if !ok {
		return core.Station{}, fmt.Errorf("%w: last played station %q is no longer at %s[%d]",
			apperrors.ErrStationNotFound, lp.Name, lp.Playlist, lp.Index)
	}
	return st, s.play(ctx, lp.Playlist, lp.Index, st)
}

// Close tears down playback. The library is already durable; only the
// external process needs cleanup.
func (s *Session) Close() error {
	return s.ctrl.Close()
}
