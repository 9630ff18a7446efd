package core

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validation errors for station data.
var (
	ErrEmptyName  = errors.New("station name is empty")
	ErrInvalidURL = errors.New("invalid stream URL")
)

// Station represents a named internet radio stream endpoint.
type Station struct {
	Name string   `json:"name"`
	URL  string   `json:"url"`
	Tags []string `json:"tags,omitempty"`
}

// NewStation validates the given fields and returns a Station.
// The URL must parse with both a scheme and a host; bad stations are
// rejected here rather than at play time.
func NewStation(name, rawURL string, tags ...string) (Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Station{}, ErrEmptyName
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Station{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Station{}, fmt.Errorf("%w: %q (scheme and host required)", ErrInvalidURL, rawURL)
	}

	return Station{Name: name, URL: u.String(), Tags: tags}, nil
}

// Equal reports whether two stations are the same (name, URL) pair.
// Tags are descriptive and do not participate in identity.
func (s Station) Equal(o Station) bool {
	return s.Name == o.Name && s.URL == o.URL
}

func (s Station) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.URL)
}
