package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrPlayerNotFound   = errors.New("player command not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrPlaylistExists   = errors.New("playlist already exists")
	ErrStationNotFound  = errors.New("station not found")
	ErrNoLastPlayed     = errors.New("no last played station")
	ErrInvariant        = errors.New("library invariant violated")
	ErrLibraryPersist   = errors.New("library could not be persisted")
	ErrStopTimeout      = errors.New("player did not terminate in time")
)

// AirbandError wraps an error with a user-friendly suggestion.
type AirbandError struct {
	Err        error
	Suggestion string
}

func (e *AirbandError) Error() string {
	return e.Err.Error()
}

func (e *AirbandError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &AirbandError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already an AirbandError with suggestion
	var abErr *AirbandError
	if errors.As(err, &abErr) && abErr.Suggestion != "" {
		return abErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Missing player binary
	if errors.Is(err, ErrPlayerNotFound) || strings.Contains(errStr, "executable file not found") {
		return "Install ffmpeg (which provides ffplay), or set player.command in your config"
	}

	// Playlist errors
	if errors.Is(err, ErrPlaylistNotFound) {
		return "Run 'airband playlist list' to see available playlists"
	}
	if errors.Is(err, ErrPlaylistExists) {
		return "Pick a different name; playlist names are case-insensitive"
	}

	// Station errors
	if errors.Is(err, ErrStationNotFound) {
		return "Run 'airband stations' to see the current playlist"
	}

	// Resume without history
	if errors.Is(err, ErrNoLastPlayed) {
		return "Play a station first; airband remembers the last one"
	}

	// Persistence errors
	if errors.Is(err, ErrLibraryPersist) || strings.Contains(errStr, "no space left") ||
		strings.Contains(errStr, "permission denied") {
		return "Changes are kept for this session but won't survive a restart. Check disk space and permissions"
	}

	// Unresponsive player
	if errors.Is(err, ErrStopTimeout) {
		return "The player process was force-killed. If this keeps happening, check the stream URL"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
