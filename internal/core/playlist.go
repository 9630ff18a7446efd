package core

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ErrIndexOutOfRange is returned for station indexes outside a playlist.
var ErrIndexOutOfRange = errors.New("station index out of range")

// Playlist is a named, ordered collection of stations. The order is
// meaningful: it defines the index users select stations by.
//
// Mutating methods return a new Playlist value instead of modifying the
// receiver, so edits can be validated and committed transactionally.
type Playlist struct {
	Name     string
	Stations []Station
}

// Len returns the number of stations.
func (p Playlist) Len() int {
	return len(p.Stations)
}

// Station returns the station at index i.
func (p Playlist) Station(i int) (Station, error) {
	if i < 0 || i >= len(p.Stations) {
		return Station{}, fmt.Errorf("%w: %d (playlist %q has %d stations)", ErrIndexOutOfRange, i, p.Name, len(p.Stations))
	}
	return p.Stations[i], nil
}

// Add returns a copy of the playlist with st appended.
func (p Playlist) Add(st Station) Playlist {
	stations := make([]Station, len(p.Stations), len(p.Stations)+1)
	copy(stations, p.Stations)
	return Playlist{Name: p.Name, Stations: append(stations, st)}
}

// Remove returns a copy of the playlist without the station at index i.
func (p Playlist) Remove(i int) (Playlist, error) {
	if i < 0 || i >= len(p.Stations) {
		return Playlist{}, fmt.Errorf("%w: %d (playlist %q has %d stations)", ErrIndexOutOfRange, i, p.Name, len(p.Stations))
	}
	stations := make([]Station, 0, len(p.Stations)-1)
	stations = append(stations, p.Stations[:i]...)
	stations = append(stations, p.Stations[i+1:]...)
	return Playlist{Name: p.Name, Stations: stations}, nil
}

// Contains reports whether the playlist already holds an exact
// (name, URL) duplicate of st.
func (p Playlist) Contains(st Station) bool {
	return slices.ContainsFunc(p.Stations, st.Equal)
}

// Find yields the stations whose name contains query, case-insensitively,
// paired with their original index. An empty query yields every station.
// The returned sequence is restartable: each range walks the playlist anew.
func (p Playlist) Find(query string) iter.Seq2[int, Station] {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(yield func(int, Station) bool) {
		for i, st := range p.Stations {
			if query != "" && !strings.Contains(strings.ToLower(st.Name), query) {
				continue
			}
			if !yield(i, st) {
				return
			}
		}
	}
}
