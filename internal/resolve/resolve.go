// Package resolve turns station URLs that point at playlist files (M3U,
// M3U8, PLS) into the stream URL they contain. Many station directories
// hand out playlist files rather than raw streams; the external player
// copes better when given the stream directly.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// maxPlaylistBytes bounds how much of a playlist file is read. Real
// playlist files are a few hundred bytes; anything larger is a stream.
const maxPlaylistBytes = 64 * 1024

// Resolver fetches and parses playlist URLs.
type Resolver struct {
	client *http.Client
}

// New creates a resolver whose requests are bounded by timeout.
func New(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		client: &http.Client{Timeout: timeout},
	}
}

// StreamURL resolves rawURL to a playable stream URL. URLs that do not
// look like playlists are returned unchanged. Resolution is best effort:
// callers should fall back to the raw URL on error.
func (r *Resolver) StreamURL(ctx context.Context, rawURL string) (string, error) {
	isPlaylist := hasPlaylistExtension(rawURL)

	if !isPlaylist {
		contentType, err := r.contentType(ctx, rawURL)
		if err != nil {
			return rawURL, err
		}
		isPlaylist = isPlaylistContentType(contentType)
	}

	if !isPlaylist {
		return rawURL, nil
	}

	body, err := r.fetch(ctx, rawURL)
	if err != nil {
		return rawURL, err
	}

	if streamURL := Parse(body); streamURL != "" {
		return streamURL, nil
	}
	return rawURL, nil
}

// contentType performs a HEAD request and returns the media type, without
// any charset suffix.
func (r *Resolver) contentType(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to probe content type: %w", err)
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType), nil
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch playlist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("playlist fetch returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPlaylistBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read playlist: %w", err)
	}
	return string(data), nil
}

// Parse extracts the first stream URL from playlist file content. It
// understands PLS ([playlist] sections with FileN= entries) and M3U (bare
// URLs, one per line). An empty string means no URL was found.
func Parse(content string) string {
	if strings.Contains(strings.ToLower(content), "[playlist]") {
		return parsePLS(content)
	}
	return parseM3U(content)
}

func parsePLS(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if strings.HasPrefix(key, "file") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func parseM3U(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "http") {
			return line
		}
	}
	return ""
}

func hasPlaylistExtension(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u", ".m3u8", ".pls":
		return true
	}
	return false
}

func isPlaylistContentType(contentType string) bool {
	switch contentType {
	case "audio/x-mpegurl", "audio/mpegurl", "application/x-mpegurl",
		"application/vnd.apple.mpegurl", "audio/x-scpls", "application/pls+xml":
		return true
	}
	return strings.Contains(contentType, "playlist")
}
