package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stations in the active playlist",
	Long: `Searches the active playlist for stations whose name contains the
query, case-insensitively. Matches are listed with the index to pass to
'airband play'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	query := strings.Join(args, " ")
	matches := sess.Search(query)

	if JSONOutput() {
		out := make([]map[string]interface{}, 0, len(matches))
		for _, m := range matches {
			out = append(out, map[string]interface{}{
				"index": m.Index,
				"name":  m.Station.Name,
				"url":   m.Station.URL,
			})
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if len(matches) == 0 {
		fmt.Printf("No stations matching %q\n", query)
		return nil
	}

	t := NewTable("#", "NAME", "URL")
	for _, m := range matches {
		t.Row(strconv.Itoa(m.Index), m.Station.Name, TruncateString(m.Station.URL, 60))
	}
	t.Flush()
	return nil
}
