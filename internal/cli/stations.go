package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the stations of the active playlist",
	Long: `Lists the stations of the active playlist with their index. The last
played station is marked with ▶.`,
	RunE: runStations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	sess, _, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	pl := sess.CurrentPlaylist()
	lp, resolvable := sess.LastPlayed()

	if JSONOutput() {
		stations := make([]map[string]interface{}, 0, pl.Len())
		for i, st := range pl.Stations {
			item := map[string]interface{}{
				"index": i,
				"name":  st.Name,
				"url":   st.URL,
			}
			if len(st.Tags) > 0 {
				item["tags"] = st.Tags
			}
			if lp != nil && resolvable && lp.Playlist == pl.Name && lp.Index == i {
				item["last_played"] = true
			}
			stations = append(stations, item)
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"playlist": pl.Name,
			"stations": stations,
		})
	}

	if pl.Len() == 0 {
		fmt.Printf("Playlist %q is empty. Add a station with 'airband station add'.\n", pl.Name)
		return nil
	}

	fmt.Printf("[%s]\n", strings.ToUpper(pl.Name))
	t := NewTable("", "#", "NAME", "URL", "TAGS")
	for i, st := range pl.Stations {
		marker := " "
		if lp != nil && resolvable && lp.Playlist == pl.Name && lp.Index == i {
			marker = "▶"
		}
		t.Row(marker, strconv.Itoa(i), st.Name, TruncateString(st.URL, 60), strings.Join(st.Tags, ","))
	}
	t.Flush()
	return nil
}
