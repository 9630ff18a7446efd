package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tmaehler/airband/internal/core"
	"github.com/tmaehler/airband/internal/store"
)

// StationInput holds the fields collected by the add-station form.
type StationInput struct {
	Name string
	URL  string
	Tags []string
}

// PromptStation runs the interactive add-station form. Returns nil if the
// form was cancelled.
func PromptStation() (*StationInput, error) {
	var name, rawURL, tags string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Station name").
				Placeholder("Jazz FM").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return core.ErrEmptyName
					}
					return nil
				}).
				Value(&name),
			huh.NewInput().
				Title("Stream URL").
				Placeholder("http://stream.example.com/jazz").
				Validate(func(s string) error {
					_, err := core.NewStation("x", s)
					return err
				}).
				Value(&rawURL),
			huh.NewInput().
				Title("Tags").
				Description("Optional, comma-separated").
				Value(&tags),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return nil, nil
		}
		return nil, fmt.Errorf("form failed: %w", err)
	}

	return &StationInput{
		Name: strings.TrimSpace(name),
		URL:  strings.TrimSpace(rawURL),
		Tags: splitTags(tags),
	}, nil
}

// PromptResume asks whether the last played station should be resumed.
func PromptResume(lp *store.LastPlayed) (bool, error) {
	var resume bool
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Resume last played station %q?", lp.Name)).
		Description(fmt.Sprintf("%s[%d] — %s", lp.Playlist, lp.Index, lp.URL)).
		Affirmative("Resume").
		Negative("Not now").
		Value(&resume)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		if err == huh.ErrUserAborted {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return resume, nil
}

// PromptPlaylist shows a picker over the library's playlists and returns
// the selected name, or "" if cancelled.
func PromptPlaylist(lib *store.Library) (string, error) {
	var options []huh.Option[string]
	for _, name := range lib.PlaylistNames() {
		pl, _ := lib.Playlist(name)
		label := fmt.Sprintf("%s (%d stations)", name, pl.Len())
		if name == lib.Current {
			label += " [active]"
		}
		options = append(options, huh.NewOption(label, name))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Switch playlist").
				Description("Switching does not interrupt current playback").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return "", nil
		}
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
