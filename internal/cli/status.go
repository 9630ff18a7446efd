package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tmaehler/airband/internal/player"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session and library status",
	Long: `Shows the active playlist, the last played station, and whether the
configured player command is available.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	lib := sess.Library()
	pl := lib.CurrentPlaylist()
	lp, resolvable := sess.LastPlayed()
	playerErr := player.CheckCommand(cfg.Player.Command)

	if JSONOutput() {
		out := map[string]interface{}{
			"current_playlist": pl.Name,
			"stations":         pl.Len(),
			"playlists":        len(lib.Playlists),
			"player_command":   cfg.Player.Command,
			"player_available": playerErr == nil,
			"library_path":     sess.LibraryPath(),
		}
		if lp != nil {
			out["last_played"] = map[string]interface{}{
				"playlist":   lp.Playlist,
				"index":      lp.Index,
				"name":       lp.Name,
				"url":        lp.URL,
				"resolvable": resolvable,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	fmt.Printf("Playlist:  %s (%s)\n", pl.Name, pluralStations(pl.Len()))
	fmt.Printf("Playlists: %d\n", len(lib.Playlists))

	if lp != nil {
		label := fmt.Sprintf("%s (%s[%d])", lp.Name, lp.Playlist, lp.Index)
		if !resolvable {
			label += " — no longer in library"
		}
		fmt.Printf("Last played: %s\n", label)
	} else {
		fmt.Println("Last played: none")
	}

	if playerErr != nil {
		fmt.Printf("Player:    %s (not found)\n", cfg.Player.Command)
	} else {
		fmt.Printf("Player:    %s\n", cfg.Player.Command)
	}

	return nil
}

func pluralStations(n int) string {
	if n == 1 {
		return "1 station"
	}
	return fmt.Sprintf("%s stations", humanize.Comma(int64(n)))
}
