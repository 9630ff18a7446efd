package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/tmaehler/airband/internal/errors"
	"github.com/tmaehler/airband/internal/wizard"
)

var stationTags []string

var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Manage stations in the active playlist",
}

var stationAddCmd = &cobra.Command{
	Use:   "add [name url]",
	Short: "Add a station to the active playlist",
	Long: `Adds a station to the active playlist. With no arguments an
interactive form collects the station details.

Examples:
  airband station add
  airband station add "Jazz FM" http://stream.example.com/jazz --tags jazz,smooth`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runStationAdd,
}

var stationRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove a station from the active playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runStationRemove,
}

func init() {
	stationAddCmd.Flags().StringSliceVar(&stationTags, "tags", nil, "Comma-separated tags for the station")
	stationCmd.AddCommand(stationAddCmd)
	stationCmd.AddCommand(stationRemoveCmd)
	rootCmd.AddCommand(stationCmd)
}

func runStationAdd(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	name, rawURL := "", ""
	tags := stationTags

	switch len(args) {
	case 2:
		name, rawURL = args[0], args[1]
	case 0:
		if !wizard.IsTerminal() {
			return fmt.Errorf("station name and URL required when not running interactively")
		}
		input, err := wizard.PromptStation()
		if err != nil {
			return err
		}
		if input == nil {
			// Form cancelled.
			return nil
		}
		name, rawURL = input.Name, input.URL
		if len(input.Tags) > 0 {
			tags = input.Tags
		}
	default:
		return fmt.Errorf("expected both a station name and a URL")
	}

	st, duplicate, err := sess.AddStation(name, rawURL, tags...)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status":    "added",
			"name":      st.Name,
			"url":       st.URL,
			"tags":      st.Tags,
			"duplicate": duplicate,
		})
	}

	fmt.Printf("Added %s\n", st.Name)
	if duplicate {
		fmt.Fprintf(os.Stderr, "Note: the playlist already had a station with this name or URL\n")
	}
	return nil
}

func runStationRemove(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid station index %q", args[0])
	}

	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	st, err := sess.RemoveStation(index)
	if err != nil {
		if errors.Is(err, apperrors.ErrLibraryPersist) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			return err
		}
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"status": "removed",
			"name":   st.Name,
			"index":  index,
		})
	}

	fmt.Printf("Removed %s\n", st.Name)
	return nil
}
