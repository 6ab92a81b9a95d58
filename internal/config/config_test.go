package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsWhenNoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if used != "" {
		t.Fatalf("used = %q, want empty", used)
	}
	if cfg.OutputDir != "public" {
		t.Fatalf("OutputDir = %q, want public", cfg.OutputDir)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("DataDir = %q, want data", cfg.DataDir)
	}
	if !cfg.Calendar {
		t.Fatalf("expected calendar export enabled by default")
	}
	if cfg.Course.Prefix != "CENG" || !strings.Contains(cfg.Course.URLPattern, "%s") {
		t.Fatalf("unexpected course defaults: %+v", cfg.Course)
	}
	if cfg.RemoteData() {
		t.Fatalf("expected local data by default")
	}
}

func TestLoadParsesYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	body := strings.TrimSpace(`
siteTitle: Jane Doe
outputDir: dist
dataURL: https://example.org/data
theme: dark
fetchTimeout: 5s
calendar: false
author:
  name: Jane Doe
  aliases:
    - Jane Döe
course:
  prefix: CS
  urlPattern: https://example.org/courses/%s
`)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if used != path {
		t.Fatalf("used = %q, want %q", used, path)
	}
	if cfg.SiteTitle != "Jane Doe" || cfg.OutputDir != "dist" || cfg.Theme != "dark" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.Calendar {
		t.Fatalf("expected calendar disabled")
	}
	if !cfg.RemoteData() {
		t.Fatalf("expected remote data")
	}
	if len(cfg.Author.Aliases) != 1 || cfg.Author.Aliases[0] != "Jane Döe" {
		t.Fatalf("aliases = %v", cfg.Author.Aliases)
	}
	if cfg.Course.Prefix != "CS" {
		t.Fatalf("course prefix = %q, want CS", cfg.Course.Prefix)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SITE_OUTPUTDIR", "build")
	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OutputDir != "build" {
		t.Fatalf("OutputDir = %q, want build", cfg.OutputDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	elsewhere := filepath.Join(t.TempDir(), "public")

	sources := Config{DataDir: "data", ContentDir: "content", LayoutsDir: "layouts", StaticDir: "static"}
	withOutput := func(out string) Config {
		c := sources
		c.OutputDir = out
		return c
	}

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{OutputDir: "public"}},
		{name: "ok with sources", cfg: withOutput("public")},
		{name: "absolute elsewhere", cfg: withOutput(elsewhere)},
		{name: "dark theme", cfg: Config{OutputDir: "public", Theme: "dark"}},
		{name: "empty output", cfg: Config{OutputDir: " "}, wantErr: true},
		{name: "dot output", cfg: Config{OutputDir: "."}, wantErr: true},
		{name: "dot slash output", cfg: Config{OutputDir: "./"}, wantErr: true},
		{name: "parent output", cfg: Config{OutputDir: ".."}, wantErr: true},
		{name: "root output", cfg: Config{OutputDir: "/"}, wantErr: true},
		{name: "data output", cfg: withOutput("data"), wantErr: true},
		{name: "data parent output", cfg: withOutput("data/.."), wantErr: true},
		{name: "content output", cfg: withOutput("./content/"), wantErr: true},
		{name: "layouts output", cfg: withOutput("layouts"), wantErr: true},
		{name: "output holds static", cfg: func() Config { c := withOutput("site"); c.StaticDir = "site/static"; return c }(), wantErr: true},
		{name: "bad theme", cfg: Config{OutputDir: "public", Theme: "sepia"}, wantErr: true},
		{name: "negative timeout", cfg: Config{OutputDir: "public", FetchTimeout: -time.Second}, wantErr: true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: Validate() = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}
