package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tmaehler/airband/internal/core"
	apperrors "github.com/tmaehler/airband/internal/errors"
	"github.com/tmaehler/airband/internal/player"
	"github.com/tmaehler/airband/internal/store"
)

// newTestSession builds a session over a temp library and a shell script
// standing in for the player process.
func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}

	err = st.Update(func(l *store.Library) (*store.Library, error) {
		next, err := l.WithPlaylistCreated("Jazz")
		if err != nil {
			return nil, err
		}
		for _, s := range []core.Station{
			{Name: "BBC World", URL: "http://example.com/bbc"},
			{Name: "Jazz FM", URL: "http://example.com/jazz"},
			{Name: "Classic Rock", URL: "http://example.com/rock"},
		} {
			next, _, err = next.WithStationAdded("Jazz", s)
			if err != nil {
				return nil, err
			}
		}
		return next.WithCurrent("Jazz")
	})
	if err != nil {
		t.Fatalf("seed Update() error = %v", err)
	}

	ctrl := player.New(player.Options{
		Command:        "sh",
		Args:           []string{"-c", `trap 'exit 0' TERM; sleep 60`, "airband-test"},
		StopGrace:      500 * time.Millisecond,
		StartupConfirm: 50 * time.Millisecond,
		PollInterval:   20 * time.Millisecond,
	})

	sess := New(st, ctrl, nil)
	t.Cleanup(func() { sess.Close() })
	return sess, path
}

func TestPlayIndexRecordsLastPlayed(t *testing.T) {
	sess, path := newTestSession(t)

	st, err := sess.PlayIndex(context.Background(), 1)
	if err != nil {
		t.Fatalf("PlayIndex() error = %v", err)
	}
	if st.Name != "Jazz FM" {
		t.Errorf("played station = %q, want %q", st.Name, "Jazz FM")
	}

	snap := sess.Status()
	if !snap.State.Active() {
		t.Errorf("State = %v after PlayIndex, want active", snap.State)
	}
	if !snap.HasStation() || snap.Station.Name != "Jazz FM" {
		t.Errorf("Station = %v, want Jazz FM", snap.Station)
	}

	// Snapshot went through write-through persistence.
	st2, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	lp := st2.Library().LastPlayed
	if lp == nil {
		t.Fatal("LastPlayed = nil after playback, want snapshot")
	}
	if lp.Playlist != "Jazz" || lp.Index != 1 || lp.Name != "Jazz FM" {
		t.Errorf("LastPlayed = %+v, want Jazz[1] Jazz FM", lp)
	}
}

func TestPlayIndexOutOfRange(t *testing.T) {
	sess, _ := newTestSession(t)

	if _, err := sess.PlayIndex(context.Background(), 9); !errors.Is(err, apperrors.ErrStationNotFound) {
		t.Fatalf("PlayIndex(9) error = %v, want ErrStationNotFound", err)
	}
	if got := sess.Status().State; got != core.StateIdle {
		t.Errorf("State = %v after bad index, want idle", got)
	}
}

func TestPlayQuery(t *testing.T) {
	sess, _ := newTestSession(t)

	st, err := sess.PlayQuery(context.Background(), "classic")
	if err != nil {
		t.Fatalf("PlayQuery() error = %v", err)
	}
	if st.Name != "Classic Rock" {
		t.Errorf("played station = %q, want %q", st.Name, "Classic Rock")
	}

	if _, err := sess.PlayQuery(context.Background(), "polka"); !errors.Is(err, apperrors.ErrStationNotFound) {
		t.Errorf("PlayQuery(no match) error = %v, want ErrStationNotFound", err)
	}
}

func TestResumePlaysRecordedStation(t *testing.T) {
	sess, _ := newTestSession(t)

	if _, err := sess.PlayIndex(context.Background(), 2); err != nil {
		t.Fatalf("PlayIndex() error = %v", err)
	}
	if err := sess.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	st, err := sess.Resume(context.Background())
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if st.Name != "Classic Rock" {
		t.Errorf("resumed station = %q, want %q", st.Name, "Classic Rock")
	}
}

func TestResumeWithoutHistory(t *testing.T) {
	sess, _ := newTestSession(t)

	if _, err := sess.Resume(context.Background()); !errors.Is(err, apperrors.ErrNoLastPlayed) {
		t.Errorf("Resume() error = %v, want ErrNoLastPlayed", err)
	}
}

func TestResumeStaleSnapshot(t *testing.T) {
	sess, _ := newTestSession(t)

	if _, err := sess.PlayIndex(context.Background(), 0); err != nil {
		t.Fatalf("PlayIndex() error = %v", err)
	}
	if err := sess.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	// Removing station 0 shifts the indexes; the snapshot is now stale.
	if _, err := sess.RemoveStation(0); err != nil {
		t.Fatalf("RemoveStation() error = %v", err)
	}

	if _, err := sess.Resume(context.Background()); !errors.Is(err, apperrors.ErrStationNotFound) {
		t.Errorf("Resume() error = %v for stale snapshot, want ErrStationNotFound", err)
	}
	if got := sess.Status().State; got != core.StateIdle {
		t.Errorf("State = %v after refused resume, want idle", got)
	}

	lp, resolvable := sess.LastPlayed()
	if lp == nil {
		t.Fatal("LastPlayed() = nil, want stale snapshot kept")
	}
	if resolvable {
		t.Error("LastPlayed() resolvable = true, want false")
	}
}

func TestSwitchPlaylistDoesNotStopPlayback(t *testing.T) {
	sess, _ := newTestSession(t)

	if _, err := sess.PlayIndex(context.Background(), 0); err != nil {
		t.Fatalf("PlayIndex() error = %v", err)
	}
	if err := sess.SwitchPlaylist("default"); err != nil {
		t.Fatalf("SwitchPlaylist() error = %v", err)
	}

	if got := sess.CurrentPlaylist().Name; got != "default" {
		t.Errorf("CurrentPlaylist().Name = %q, want %q", got, "default")
	}
	if snap := sess.Status(); !snap.State.Active() {
		t.Errorf("State = %v after playlist switch, want still active", snap.State)
	}
}

func TestSearch(t *testing.T) {
	sess, _ := newTestSession(t)

	matches := sess.Search("jazz")
	if len(matches) != 1 {
		t.Fatalf("Search(\"jazz\") returned %d matches, want 1", len(matches))
	}
	if matches[0].Index != 1 || matches[0].Station.Name != "Jazz FM" {
		t.Errorf("Search(\"jazz\") = (%d, %q), want (1, \"Jazz FM\")", matches[0].Index, matches[0].Station.Name)
	}
}

func TestAddStation(t *testing.T) {
	sess, _ := newTestSession(t)

	st, dup, err := sess.AddStation("Ambient", "http://example.com/ambient", "chill")
	if err != nil {
		t.Fatalf("AddStation() error = %v", err)
	}
	if dup {
		t.Error("dup = true for new station, want false")
	}
	if st.Name != "Ambient" {
		t.Errorf("station name = %q, want %q", st.Name, "Ambient")
	}
	if got := sess.CurrentPlaylist().Len(); got != 4 {
		t.Errorf("playlist Len() = %d after add, want 4", got)
	}

	// Exact duplicate is flagged but still added.
	_, dup, err = sess.AddStation("Ambient", "http://example.com/ambient")
	if err != nil {
		t.Fatalf("AddStation() duplicate error = %v", err)
	}
	if !dup {
		t.Error("dup = false for exact duplicate, want true")
	}

	// Bad data never reaches the store.
	if _, _, err := sess.AddStation("", "http://example.com/x"); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("AddStation(empty name) error = %v, want ErrEmptyName", err)
	}
	if _, _, err := sess.AddStation("X", "not-a-url"); !errors.Is(err, core.ErrInvalidURL) {
		t.Errorf("AddStation(bad url) error = %v, want ErrInvalidURL", err)
	}
}

func TestRemoveStation(t *testing.T) {
	sess, _ := newTestSession(t)

	removed, err := sess.RemoveStation(1)
	if err != nil {
		t.Fatalf("RemoveStation() error = %v", err)
	}
	if removed.Name != "Jazz FM" {
		t.Errorf("removed station = %q, want %q", removed.Name, "Jazz FM")
	}
	if got := sess.CurrentPlaylist().Len(); got != 2 {
		t.Errorf("playlist Len() = %d after remove, want 2", got)
	}

	if _, err := sess.RemoveStation(10); !errors.Is(err, apperrors.ErrStationNotFound) {
		t.Errorf("RemoveStation(10) error = %v, want ErrStationNotFound", err)
	}
}

func TestStopIdleSessionIsNoop(t *testing.T) {
	sess, _ := newTestSession(t)

	if err := sess.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v, want nil", err)
	}
	if got := sess.Status().State; got != core.StateIdle {
		t.Errorf("State = %v, want idle", got)
	}
}

func TestDeleteActivePlaylistKeepsSessionConsistent(t *testing.T) {
	sess, _ := newTestSession(t)

	if err := sess.DeletePlaylist("Jazz"); err != nil {
		t.Fatalf("DeletePlaylist() error = %v", err)
	}
	if got := sess.CurrentPlaylist().Name; got != "default" {
		t.Errorf("CurrentPlaylist().Name = %q after deleting active playlist, want %q", got, "default")
	}
	if err := sess.Library().Validate(); err != nil {
		t.Errorf("Validate() error = %v after delete", err)
	}
}
