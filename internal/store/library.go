package store

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tmaehler/airband/internal/core"
	apperrors "github.com/tmaehler/airband/internal/errors"
)

// DefaultPlaylistName is the playlist created on first run.
const DefaultPlaylistName = "default"

// Library is the persisted root record: every named playlist, the active
// playlist, and a snapshot of the last station that started playing.
//
// Library values are treated as immutable. Mutating methods return a new
// Library so edits can be validated before they are committed, and a failed
// edit leaves the original untouched. Unknown keys in the underlying file
// are ignored on load; missing keys get defaults from Normalize.
type Library struct {
	Playlists  map[string][]core.Station `json:"playlists"`
	Current    string                    `json:"current_playlist"`
	LastPlayed *LastPlayed               `json:"last_played_station,omitempty"`
}

// LastPlayed is the snapshot captured when playback last started
// successfully. Name and URL are recorded alongside the (playlist, index)
// reference so a stale reference can be recognized after edits.
type LastPlayed struct {
	Playlist string `json:"playlist"`
	Index    int    `json:"index"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// DefaultLibrary returns the library created on first run: a single empty
// playlist named "default" and no playback history.
func DefaultLibrary() *Library {
	return &Library{
		Playlists: map[string][]core.Station{DefaultPlaylistName: {}},
		Current:   DefaultPlaylistName,
	}
}

// Clone returns a deep copy of the library.
func (l *Library) Clone() *Library {
	out := &Library{
		Playlists: make(map[string][]core.Station, len(l.Playlists)),
		Current:   l.Current,
	}
	for name, stations := range l.Playlists {
		out.Playlists[name] = slices.Clone(stations)
	}
	if l.LastPlayed != nil {
		lp := *l.LastPlayed
		out.LastPlayed = &lp
	}
	return out
}

// Normalize repairs a freshly loaded library so startup never fails:
// it guarantees at least one playlist exists and that the active playlist
// resolves to one of them.
func (l *Library) Normalize() {
	if l.Playlists == nil {
		l.Playlists = map[string][]core.Station{}
	}
	if len(l.Playlists) == 0 {
		l.Playlists[DefaultPlaylistName] = []core.Station{}
	}
	if _, ok := l.Playlists[l.Current]; !ok {
		l.Current = firstPlaylistName(l.Playlists)
	}
}

// Validate checks the invariants every committed library must hold.
func (l *Library) Validate() error {
	if len(l.Playlists) == 0 {
		return fmt.Errorf("%w: no playlists", apperrors.ErrInvariant)
	}

	names := slices.Sorted(maps.Keys(l.Playlists))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty playlist name", apperrors.ErrInvariant)
		}
		for _, other := range names[i+1:] {
			if strings.EqualFold(name, other) {
				return fmt.Errorf("%w: playlist names %q and %q collide case-insensitively", apperrors.ErrInvariant, name, other)
			}
		}
	}

	if _, ok := l.Playlists[l.Current]; !ok {
		return fmt.Errorf("%w: current playlist %q does not exist", apperrors.ErrInvariant, l.Current)
	}

	return nil
}

// Playlist returns the named playlist. Lookup is case-insensitive; the
// returned playlist carries its canonical name.
func (l *Library) Playlist(name string) (core.Playlist, bool) {
	if stations, ok := l.Playlists[name]; ok {
		return core.Playlist{Name: name, Stations: stations}, true
	}
	for key, stations := range l.Playlists {
		if strings.EqualFold(key, name) {
			return core.Playlist{Name: key, Stations: stations}, true
		}
	}
	return core.Playlist{}, false
}

// CurrentPlaylist returns the active playlist.
func (l *Library) CurrentPlaylist() core.Playlist {
	pl, _ := l.Playlist(l.Current)
	return pl
}

// PlaylistNames returns all playlist names in sorted order.
func (l *Library) PlaylistNames() []string {
	return slices.Sorted(maps.Keys(l.Playlists))
}

// WithStationAdded returns a library with st appended to the named playlist.
// The second return value reports whether st was an exact duplicate of a
// station already present; duplicates are still added, the flag lets the
// caller warn about redundancy.
func (l *Library) WithStationAdded(playlist string, st core.Station) (*Library, bool, error) {
	pl, ok := l.Playlist(playlist)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", apperrors.ErrPlaylistNotFound, playlist)
	}
	dup := pl.Contains(st)
	out := l.Clone()
	out.Playlists[pl.Name] = pl.Add(st).Stations
	return out, dup, nil
}

// WithStationRemoved returns a library without station i of the named playlist.
func (l *Library) WithStationRemoved(playlist string, i int) (*Library, error) {
	pl, ok := l.Playlist(playlist)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrPlaylistNotFound, playlist)
	}
	trimmed, err := pl.Remove(i)
	if err != nil {
		return nil, err
	}
	out := l.Clone()
	out.Playlists[pl.Name] = trimmed.Stations
	return out, nil
}

// WithPlaylistCreated returns a library with a new empty playlist.
// Names are unique case-insensitively.
func (l *Library) WithPlaylistCreated(name string) (*Library, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty playlist name", apperrors.ErrInvariant)
	}
	if _, ok := l.Playlist(name); ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrPlaylistExists, name)
	}
	out := l.Clone()
	out.Playlists[name] = []core.Station{}
	return out, nil
}

// WithPlaylistDeleted returns a library without the named playlist. Deleting
// the active playlist atomically falls back to the first remaining playlist,
// or to a fresh empty default when none remain.
func (l *Library) WithPlaylistDeleted(name string) (*Library, error) {
	pl, ok := l.Playlist(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrPlaylistNotFound, name)
	}

	out := l.Clone()
	delete(out.Playlists, pl.Name)
	if len(out.Playlists) == 0 {
		out.Playlists[DefaultPlaylistName] = []core.Station{}
	}
	if out.Current == pl.Name {
		out.Current = firstPlaylistName(out.Playlists)
	}
	return out, nil
}

// WithCurrent returns a library with the active playlist switched.
func (l *Library) WithCurrent(name string) (*Library, error) {
	pl, ok := l.Playlist(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrPlaylistNotFound, name)
	}
	out := l.Clone()
	out.Current = pl.Name
	return out, nil
}

// WithLastPlayed returns a library with the last-played snapshot recorded.
func (l *Library) WithLastPlayed(lp LastPlayed) *Library {
	out := l.Clone()
	out.LastPlayed = &lp
	return out
}

// ResolveLastPlayed resolves the last-played snapshot against the current
// library. It returns false when there is no snapshot, when the referenced
// playlist or index no longer exists, or when the station at that position
// is no longer the recorded one (the snapshot is stale).
func (l *Library) ResolveLastPlayed() (core.Station, bool) {
	lp := l.LastPlayed
	if lp == nil {
		return core.Station{}, false
	}
	pl, ok := l.Playlist(lp.Playlist)
	if !ok {
		return core.Station{}, false
	}
	st, err := pl.Station(lp.Index)
	if err != nil {
		return core.Station{}, false
	}
	if st.URL != lp.URL {
		return core.Station{}, false
	}
	return st, true
}

func firstPlaylistName(playlists map[string][]core.Station) string {
	names := slices.Sorted(maps.Keys(playlists))
	return names[0]
}
