package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/tmaehler/airband/internal/errors"
)

var resumeDetach bool

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the last played station",
	Long: `Plays the station recorded by the previous session. Fails if nothing
was played yet or the station is no longer in the library.`,
	Args: cobra.NoArgs,
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().BoolVar(&resumeDetach, "detach", false, "Exit after starting playback, leaving the player running")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sess, ctrl, err := newSession()
	if err != nil {
		return err
	}

	st, err := sess.Resume(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrLibraryPersist) {
			return err
		}
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

	if resumeDetach {
		return nil
	}
	return streamForeground(ctx, sess, ctrl)
}
