package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmaehler/airband/internal/player"
	"github.com/tmaehler/airband/internal/tui"
	"github.com/tmaehler/airband/internal/wizard"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard shows the active playlist and the playback state.

Keyboard shortcuts:
  q, Ctrl+C    Quit (stops playback)
  ?            Help
  /            Filter stations
  Enter        Play selected station
  s            Stop
  y            Copy station URL
  Tab          Switch playlist`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !wizard.IsTerminal() {
		return fmt.Errorf("the dashboard needs an interactive terminal")
	}

	sess, ctrl, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	monitor := player.NewMonitor(ctrl, 0)
	defer monitor.Stop()
	go monitor.Start(ctx)

	// Offer to pick up where the last session left off.
	if lp, ok := sess.LastPlayed(); ok && lp != nil {
		resume, err := wizard.PromptResume(lp)
		if err != nil {
			return err
		}
		if resume {
			if _, err := sess.Resume(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: resume failed: %v\n", err)
			}
		}
	}

	refresh := cfg.TUI.RefreshInterval
	if tuiRefresh > 0 {
		refresh = tuiRefresh
	}
	if refresh <= 0 {
		refresh = 1000
	}

	return tui.Run(sess, time.Duration(refresh)*time.Millisecond)
}
