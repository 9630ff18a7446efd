package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tmaehler/airband/internal/wizard"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
	Long:  `Commands for listing, switching, creating, and deleting playlists.`,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	RunE:  runPlaylistList,
}

var playlistSwitchCmd = &cobra.Command{
	Use:   "switch [name]",
	Short: "Switch the active playlist",
	Long: `Makes the named playlist the active one. Playback of the current
station is not interrupted. Without arguments an interactive picker is
shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlaylistSwitch,
}

var playlistNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistNew,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a playlist",
	Long: `Deletes the named playlist. Deleting the active playlist switches to
another one; deleting the last playlist leaves a fresh empty default.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaylistDelete,
}

func init() {
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistSwitchCmd)
	playlistCmd.AddCommand(playlistNewCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	lib := sess.Library()
	active := lib.CurrentPlaylist().Name

	if JSONOutput() {
		out := make([]map[string]interface{}, 0, len(lib.Playlists))
		for _, name := range lib.PlaylistNames() {
			out = append(out, map[string]interface{}{
				"name":     name,
				"stations": len(lib.Playlists[name]),
				"active":   name == active,
			})
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	t := NewTable("", "NAME", "STATIONS")
	for _, name := range lib.PlaylistNames() {
		t.Row(StatusIcon(name == active), name, strconv.Itoa(len(lib.Playlists[name])))
	}
	t.Flush()
	return nil
}

func runPlaylistSwitch(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !wizard.IsTerminal() {
			return fmt.Errorf("playlist name required when not running interactively")
		}
		name, err = wizard.PromptPlaylist(sess.Library())
		if err != nil {
			return err
		}
		if name == "" {
			// Picker cancelled.
			return nil
		}
	}

	if err := sess.SwitchPlaylist(name); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status":   "switched",
			"playlist": sess.CurrentPlaylist().Name,
		})
	}

	fmt.Printf("Switched to %s\n", sess.CurrentPlaylist().Name)
	return nil
}

func runPlaylistNew(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.CreatePlaylist(args[0]); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status":   "created",
			"playlist": args[0],
		})
	}

	fmt.Printf("Created %s\n", args[0])
	return nil
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.DeletePlaylist(args[0]); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status":   "deleted",
			"playlist": args[0],
			"active":   sess.CurrentPlaylist().Name,
		})
	}

	fmt.Printf("Deleted %s (active playlist is now %s)\n", args[0], sess.CurrentPlaylist().Name)
	return nil
}
