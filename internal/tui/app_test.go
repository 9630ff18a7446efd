package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tmaehler/airband/internal/core"
	"github.com/tmaehler/airband/internal/player"
	"github.com/tmaehler/airband/internal/session"
	"github.com/tmaehler/airband/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "library.json"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	err = st.Update(func(l *store.Library) (*store.Library, error) {
		next, _, err := l.WithStationAdded(store.DefaultPlaylistName, core.Station{
			Name: "Jazz FM", URL: "http://example.com/jazz",
		})
		return next, err
	})
	if err != nil {
		t.Fatalf("seed Update() error = %v", err)
	}

	ctrl := player.New(player.Options{Command: "sh"})
	sess := session.New(st, ctrl, nil)
	t.Cleanup(func() { sess.Close() })

	m := NewModel(sess, 100*time.Millisecond)
	m.width = 80
	m.height = 24
	return m
}

func TestViewFramesStationList(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "Jazz FM") {
		t.Errorf("View() does not list the seeded station:\n%s", view)
	}
	// The list is framed by the focused panel border while the filter
	// input is inactive.
	if !strings.Contains(view, "╭") {
		t.Errorf("View() has no panel frame around the station list:\n%s", view)
	}
}

func TestFilterNarrowsList(t *testing.T) {
	m := newTestModel(t)

	m.filter = "nomatch"
	m.reload()
	if got := len(m.matches); got != 0 {
		t.Errorf("matches = %d with non-matching filter, want 0", got)
	}

	m.filter = "jazz"
	m.reload()
	if got := len(m.matches); got != 1 {
		t.Fatalf("matches = %d with matching filter, want 1", got)
	}
	if got := m.matches[0].Station.Name; got != "Jazz FM" {
		t.Errorf("match = %q, want Jazz FM", got)
	}
}
