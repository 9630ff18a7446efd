package core

import (
	"errors"
	"testing"
)

func testPlaylist() Playlist {
	return Playlist{
		Name: "World",
		Stations: []Station{
			{Name: "BBC World", URL: "http://example.com/bbc"},
			{Name: "Jazz FM", URL: "http://example.com/jazz"},
			{Name: "Classic Rock", URL: "http://example.com/rock"},
		},
	}
}

func TestPlaylistAddDoesNotMutate(t *testing.T) {
	p := testPlaylist()
	st := Station{Name: "New", URL: "http://example.com/new"}

	q := p.Add(st)
	if q.Len() != 4 {
		t.Errorf("Add() result Len() = %d, want 4", q.Len())
	}
	if p.Len() != 3 {
		t.Errorf("original Len() = %d after Add, want 3", p.Len())
	}
	if got, _ := q.Station(3); !got.Equal(st) {
		t.Errorf("Station(3) = %v, want %v", got, st)
	}
}

func TestPlaylistRemove(t *testing.T) {
	p := testPlaylist()

	q, err := p.Remove(1)
	if err != nil {
		t.Fatalf("Remove(1) error = %v", err)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	if got, _ := q.Station(1); got.Name != "Classic Rock" {
		t.Errorf("Station(1).Name = %q, want %q", got.Name, "Classic Rock")
	}
	if p.Len() != 3 {
		t.Errorf("original Len() = %d after Remove, want 3", p.Len())
	}

	if _, err := p.Remove(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(3) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := p.Remove(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestPlaylistFind(t *testing.T) {
	p := testPlaylist()

	type match struct {
		index int
		name  string
	}
	collect := func(query string) []match {
		var got []match
		for i, st := range p.Find(query) {
			got = append(got, match{i, st.Name})
		}
		return got
	}

	got := collect("jazz")
	want := []match{{1, "Jazz FM"}}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Find(\"jazz\") = %v, want %v", got, want)
	}

	if got := collect(""); len(got) != 3 {
		t.Errorf("Find(\"\") returned %d matches, want 3", len(got))
	}

	if got := collect("zzz"); len(got) != 0 {
		t.Errorf("Find(\"zzz\") = %v, want none", got)
	}

	// Sequence is restartable: ranging twice yields the same matches.
	first := collect("c")
	second := collect("c")
	if len(first) != len(second) {
		t.Errorf("restarted Find returned %d matches, want %d", len(second), len(first))
	}
}

func TestPlaylistFindStopsEarly(t *testing.T) {
	p := testPlaylist()
	n := 0
	for range p.Find("") {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d stations, want 1", n)
	}
}

func TestPlaylistContains(t *testing.T) {
	p := testPlaylist()
	if !p.Contains(Station{Name: "Jazz FM", URL: "http://example.com/jazz"}) {
		t.Error("Contains() = false for exact duplicate, want true")
	}
	if p.Contains(Station{Name: "Jazz FM", URL: "http://example.com/other"}) {
		t.Error("Contains() = true for same name different url, want false")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateStarting, "starting"},
		{StatePlaying, "playing"},
		{StateStopping, "stopping"},
		{StateFailed, "failed"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateActive(t *testing.T) {
	if StateIdle.Active() || StateFailed.Active() || StateStopping.Active() {
		t.Error("Active() = true for non-running state, want false")
	}
	if !StateStarting.Active() || !StatePlaying.Active() {
		t.Error("Active() = false for running state, want true")
	}
}
