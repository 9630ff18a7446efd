package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Long: `Stop the current playback session. Stopping when nothing is playing
is a successful no-op.`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Stop(cmd.Context()); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"status": "stopped"})
	} else {
		fmt.Println("■ Stopped")
	}
	return nil
}
