package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"m3u",
			"#EXTM3U\n#EXTINF:-1,Jazz FM\nhttp://example.com/stream\n",
			"http://example.com/stream",
		},
		{
			"m3u blank lines",
			"\n\n  http://example.com/stream  \n",
			"http://example.com/stream",
		},
		{
			"pls",
			"[playlist]\nNumberOfEntries=1\nFile1=http://example.com/stream\nTitle1=Jazz\n",
			"http://example.com/stream",
		},
		{
			"pls case-insensitive keys",
			"[Playlist]\nfile1 = http://example.com/stream\n",
			"http://example.com/stream",
		},
		{"comments only", "#EXTM3U\n# nothing here\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.content); got != tt.want {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStreamURLResolvesByExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[playlist]\nFile1=http://example.com/real-stream\n"))
	}))
	defer srv.Close()

	r := New(2 * time.Second)
	got, err := r.StreamURL(context.Background(), srv.URL+"/station.pls")
	if err != nil {
		t.Fatalf("StreamURL() error = %v", err)
	}
	if got != "http://example.com/real-stream" {
		t.Errorf("StreamURL() = %q, want %q", got, "http://example.com/real-stream")
	}
}

func TestStreamURLResolvesByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/x-mpegurl; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		w.Write([]byte("http://example.com/hidden-stream\n"))
	}))
	defer srv.Close()

	r := New(2 * time.Second)
	got, err := r.StreamURL(context.Background(), srv.URL+"/listen")
	if err != nil {
		t.Fatalf("StreamURL() error = %v", err)
	}
	if got != "http://example.com/hidden-stream" {
		t.Errorf("StreamURL() = %q, want %q", got, "http://example.com/hidden-stream")
	}
}

func TestStreamURLPassesThroughDirectStreams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
	}))
	defer srv.Close()

	r := New(2 * time.Second)
	raw := srv.URL + "/stream"
	got, err := r.StreamURL(context.Background(), raw)
	if err != nil {
		t.Fatalf("StreamURL() error = %v", err)
	}
	if got != raw {
		t.Errorf("StreamURL() = %q, want passthrough %q", got, raw)
	}
}

func TestStreamURLFallsBackOnError(t *testing.T) {
	r := New(200 * time.Millisecond)
	raw := "http://127.0.0.1:1/station.m3u" // nothing listens here

	got, err := r.StreamURL(context.Background(), raw)
	if err == nil {
		t.Error("StreamURL() error = nil for unreachable host, want error")
	}
	if got != raw {
		t.Errorf("StreamURL() = %q on error, want original %q", got, raw)
	}
}
