package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/adnanhd/adnanhd.github.io/internal/timeline"
)

func TestDevHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "news"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "news", "index.html"), []byte("news"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "img"), 0o755); err != nil {
		t.Fatal(err)
	}

	h := devHandler(dir)
	tests := []struct {
		path string
		code int
		body string
	}{
		{"/", http.StatusOK, "home"},
		{"/news/", http.StatusOK, "news"},
		{"/img/", http.StatusNotFound, ""},
		{"/missing.html", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.code {
			t.Errorf("GET %s: code = %d, want %d", tt.path, rec.Code, tt.code)
		}
		if tt.body != "" && rec.Body.String() != tt.body {
			t.Errorf("GET %s: body = %q, want %q", tt.path, rec.Body.String(), tt.body)
		}
		if tt.code == http.StatusOK && rec.Header().Get("Cache-Control") != "no-cache, no-store, must-revalidate" {
			t.Errorf("GET %s: missing no-cache header", tt.path)
		}
	}
}

func TestRenderTimeline(t *testing.T) {
	out := renderTimeline([]timeline.Event{
		{Kind: timeline.KindExperience, Date: "2021", EndDate: "Present", Title: "PhD", Organization: "X University"},
		{Kind: timeline.KindPublication, Date: "2020", Title: "P1", Venue: "V"},
		{Kind: timeline.KindPublication, Title: "Draft"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	for i, want := range [][]string{
		{"2021 - Present", "experience", "PhD", "X University"},
		{"2020", "publication", "P1", "V"},
		{"undated", "Draft"},
	} {
		for _, w := range want {
			if !strings.Contains(lines[i], w) {
				t.Errorf("line %d = %q, missing %q", i, lines[i], w)
			}
		}
	}

	if empty := renderTimeline(nil); !strings.Contains(empty, "No timeline entries.") {
		t.Errorf("empty timeline = %q", empty)
	}
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		l := setupLogger(tt.level)
		if !l.Enabled(ctx, tt.want) {
			t.Errorf("setupLogger(%q) should enable %v", tt.level, tt.want)
		}
		if tt.want > slog.LevelDebug && l.Enabled(ctx, tt.want-4) {
			t.Errorf("setupLogger(%q) should not enable %v", tt.level, tt.want-4)
		}
	}
}

func TestWatchLoopDebounces(t *testing.T) {
	dir := t.TempDir()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()
	watchTree(watcher, dir, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan struct{}, 4)
	go watchLoop(ctx, watcher, slog.New(slog.DiscardHandler), func() {
		calls.Add(1)
		done <- struct{}{}
	})

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "bio.yaml"), []byte("name: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild was not triggered")
	}
	time.Sleep(2 * debounceDuration)
	if n := calls.Load(); n != 1 {
		t.Errorf("rebuild called %d times, want 1", n)
	}
}

func TestWatchRootsSkipsDataDirForRemoteData(t *testing.T) {
	saved := appConfig
	defer func() { appConfig = saved }()

	appConfig.DataDir = "data"
	appConfig.ContentDir = "content"
	appConfig.LayoutsDir = "layouts"
	appConfig.StaticDir = "static"

	appConfig.DataURL = ""
	if got := strings.Join(watchRoots(), ","); got != "data,content,layouts,static" {
		t.Errorf("local roots = %s", got)
	}
	appConfig.DataURL = "https://example.org/data"
	if got := strings.Join(watchRoots(), ","); got != "content,layouts,static" {
		t.Errorf("remote roots = %s", got)
	}
}

func withDiscardLogger(t *testing.T) {
	t.Helper()
	saved := logger
	logger = slog.New(slog.DiscardHandler)
	t.Cleanup(func() { logger = saved })
}

func TestExportICSSkipsUndatedTimeline(t *testing.T) {
	withDiscardLogger(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	undated := []timeline.Event{{Kind: timeline.KindPublication, Title: "Draft"}}

	path := filepath.Join(t.TempDir(), "timeline.ics")
	if err := exportICS(io.Discard, path, undated, now); err != nil {
		t.Fatalf("exportICS(file) = %v, want nil", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("calendar file written for an undated timeline, stat err = %v", err)
	}

	var stdout bytes.Buffer
	if err := exportICS(&stdout, "-", undated, now); err != nil {
		t.Fatalf("exportICS(-) = %v, want nil", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestExportICSWritesDatedTimeline(t *testing.T) {
	withDiscardLogger(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	events := []timeline.Event{{Kind: timeline.KindExperience, Date: "2021", Title: "PhD"}}

	path := filepath.Join(t.TempDir(), "timeline.ics")
	if err := exportICS(io.Discard, path, events, now); err != nil {
		t.Fatalf("exportICS(file): %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "BEGIN:VEVENT") {
		t.Errorf("calendar has no events:\n%s", b)
	}

	var stdout bytes.Buffer
	if err := exportICS(&stdout, "-", events, now); err != nil {
		t.Fatalf("exportICS(-): %v", err)
	}
	if !strings.Contains(stdout.String(), "SUMMARY:PhD") {
		t.Errorf("stdout calendar = %q", stdout.String())
	}
}

func TestRootCommandLeavesErrorReportingToExecute(t *testing.T) {
	if !rootCmd.SilenceErrors {
		t.Error("cobra would print command errors a second time")
	}
	if !rootCmd.SilenceUsage {
		t.Error("usage should not be printed on command errors")
	}
}
