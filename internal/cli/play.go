package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmaehler/airband/internal/core"
	apperrors "github.com/tmaehler/airband/internal/errors"
	"github.com/tmaehler/airband/internal/player"
	"github.com/tmaehler/airband/internal/session"
)

var playDetach bool

var playCmd = &cobra.Command{
	Use:   "play [index|query]",
	Short: "Play a station from the active playlist",
	Long: `Play a station and stream in the foreground until interrupted.
A numeric argument selects a station by its index (as shown by
'airband stations'); anything else plays the first name match.
Without arguments, the last played station is resumed.

Examples:
  airband play          # Resume the last played station
  airband play 3        # Play station 3 of the active playlist
  airband play jazz     # Play the first station matching "jazz"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playDetach, "detach", false, "Exit after starting playback, leaving the player running")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, ctrl, err := newSession()
	if err != nil {
		return err
	}

	var st core.Station
	switch {
	case len(args) == 0:
		st, err = sess.Resume(ctx)
	default:
		if index, convErr := strconv.Atoi(args[0]); convErr == nil {
			st, err = sess.PlayIndex(ctx, index)
		} else {
			st, err = sess.PlayQuery(ctx, strings.Join(args, " "))
		}
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrLibraryPersist) {
			return err
		}
		// Playback started; only the snapshot write failed.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status":  "playing",
			"station": st.Name,
			"url":     st.URL,
		})
	} else {
		fmt.Printf("▶ Playing %s\n", st.Name)
	}

	if playDetach {
		return nil
	}
	return streamForeground(ctx, sess, ctrl)
}

// streamForeground blocks while the station plays, reporting state
// transitions, until the stream fails or the user interrupts.
func streamForeground(ctx context.Context, sess *session.Session, ctrl *player.Controller) error {
	defer sess.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := player.NewMonitor(ctrl, 0)
	defer monitor.Stop()
	go monitor.Start(ctx)

	if !JSONOutput() {
		fmt.Println("  Press Ctrl-C to stop")
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	prev := sess.Status().State
	for {
		select {
		case <-ctx.Done():
			if !JSONOutput() {
				fmt.Println("Stopped")
			}
			return sess.Stop(context.Background())
		case <-ticker.C:
			snap := sess.Status()
			if snap.State == prev {
				continue
			}
			prev = snap.State

			switch snap.State {
			case core.StatePlaying:
				if !JSONOutput() && snap.HasStation() {
					fmt.Printf("♪ Streaming %s\n", snap.Station.Name)
				}
			case core.StateFailed:
				return fmt.Errorf("playback failed: %s", snap.Reason)
			case core.StateIdle:
				// Player finished on its own (stream ended cleanly).
				return nil
			}
		}
	}
}
