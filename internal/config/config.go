package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (SITE_OUTPUTDIR, ...).
const EnvPrefix = "SITE"

// ErrConfigNotFound is returned when an explicitly requested config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// Author names the site owner so renderers can highlight them in author lists.
type Author struct {
	Name    string   `mapstructure:"name"`
	Aliases []string `mapstructure:"aliases"`
}

// Course controls linking of course codes found in resume bullets.
type Course struct {
	Prefix     string `mapstructure:"prefix"`
	URLPattern string `mapstructure:"urlPattern"`
}

type Config struct {
	SiteTitle    string        `mapstructure:"siteTitle"`
	BaseURL      string        `mapstructure:"baseURL"`
	OutputDir    string        `mapstructure:"outputDir"`
	DataDir      string        `mapstructure:"dataDir"`
	DataURL      string        `mapstructure:"dataURL"`
	ContentDir   string        `mapstructure:"contentDir"`
	LayoutsDir   string        `mapstructure:"layoutsDir"`
	StaticDir    string        `mapstructure:"staticDir"`
	Theme        string        `mapstructure:"theme"`
	LogLevel     string        `mapstructure:"logLevel"`
	FetchTimeout time.Duration `mapstructure:"fetchTimeout"`
	Calendar     bool          `mapstructure:"calendar"`
	Author       Author        `mapstructure:"author"`
	Course       Course        `mapstructure:"course"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "")
	v.SetDefault("baseURL", "")
	v.SetDefault("outputDir", "public")
	v.SetDefault("dataDir", "data")
	v.SetDefault("dataURL", "")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("theme", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("fetchTimeout", time.Duration(0))
	v.SetDefault("calendar", true)
	v.SetDefault("author.name", "")
	v.SetDefault("author.aliases", []string{})
	v.SetDefault("course.prefix", "CENG")
	v.SetDefault("course.urlPattern", "https://catalog.metu.edu.tr/course.php?course_code=5710%s")
}

// Load reads configuration from cfgFile (or ./config.yaml when empty), the
// environment and defaults. The second return value is the config file used,
// empty when none was found.
func Load(cfgFile string) (Config, string, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && cfgFile == "":
			// defaults and environment only
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigNotFound, cfgFile)
		default:
			return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, used, nil
}

// Validate rejects configurations the builder cannot act on.
func (c Config) Validate() error {
	if err := c.validateOutputDir(); err != nil {
		return err
	}
	switch c.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("config: unknown theme %q (want light or dark)", c.Theme)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("config: fetchTimeout must not be negative")
	}
	return nil
}

// validateOutputDir rejects output directories whose removal would take the
// working directory or any source directory with it.
func (c Config) validateOutputDir() error {
	raw := strings.TrimSpace(c.OutputDir)
	if raw == "" {
		return fmt.Errorf("config: outputDir must not be empty")
	}
	out, err := filepath.Abs(filepath.Clean(raw))
	if err != nil {
		return fmt.Errorf("config: resolve outputDir %q: %w", c.OutputDir, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("config: resolve working directory: %w", err)
	}
	if within(out, wd) {
		return fmt.Errorf("config: outputDir %q would wipe the working directory", c.OutputDir)
	}

	sources := []struct{ key, dir string }{
		{"dataDir", c.DataDir},
		{"contentDir", c.ContentDir},
		{"layoutsDir", c.LayoutsDir},
		{"staticDir", c.StaticDir},
	}
	for _, src := range sources {
		dir := strings.TrimSpace(src.dir)
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(filepath.Clean(dir))
		if err != nil {
			return fmt.Errorf("config: resolve %s %q: %w", src.key, src.dir, err)
		}
		if within(out, abs) {
			return fmt.Errorf("config: outputDir %q would wipe %s %q", c.OutputDir, src.key, src.dir)
		}
	}
	return nil
}

// within reports whether path is dir itself or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RemoteData reports whether resources are fetched over HTTP instead of from DataDir.
func (c Config) RemoteData() bool {
	return strings.TrimSpace(c.DataURL) != ""
}
