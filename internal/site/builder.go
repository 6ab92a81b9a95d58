// Package site runs the full pipeline that turns the data records and
// markdown content into a static website.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/adnanhd/adnanhd.github.io/internal/config"
	"github.com/adnanhd/adnanhd.github.io/internal/loader"
	"github.com/adnanhd/adnanhd.github.io/internal/model"
	"github.com/adnanhd/adnanhd.github.io/internal/render"
	"github.com/adnanhd/adnanhd.github.io/internal/timeline"
)

const (
	calendarFile   = "timeline.ics"
	descriptionLen = 160
)

// listPages are the fixed pages besides home. A missing layout skips the page.
var listPages = []struct {
	layout, dir, title, page string
}{
	{"resume.html", "resume", "Resume", "resume"},
	{"news.html", "news", "News", "news"},
	{"blog.html", "blog", "Blog", "blog"},
}

// Result summarizes one successful build.
type Result struct {
	BuildID   string
	OutputDir string
	Pages     int
	Items     int
	Events    int
	Calendar  bool
	Duration  time.Duration
}

// Builder runs builds one at a time. It is safe to call Build from several
// goroutines; calls queue on an internal lock.
type Builder struct {
	cfg      config.Config
	logger   *slog.Logger
	loader   *loader.Loader
	renderer *render.Renderer
	md       goldmark.Markdown
	now      func() time.Time

	mu sync.Mutex
}

// NewSource picks the data source named by cfg.
func NewSource(cfg config.Config) loader.Source {
	if cfg.RemoteData() {
		return loader.NewHTTPSource(cfg.DataURL, cfg.FetchTimeout)
	}
	return loader.DirSource{Dir: cfg.DataDir}
}

// NewRenderer builds the section renderer configured by cfg.
func NewRenderer(cfg config.Config) (*render.Renderer, error) {
	return render.New(render.Options{
		AuthorName:       cfg.Author.Name,
		AuthorAliases:    cfg.Author.Aliases,
		CoursePrefix:     cfg.Course.Prefix,
		CourseURLPattern: cfg.Course.URLPattern,
		Theme:            cfg.Theme,
	})
}

// NewBuilder wires a Builder for cfg. A nil logger discards output.
func NewBuilder(cfg config.Config, logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:      cfg,
		logger:   logger,
		loader:   loader.New(NewSource(cfg), logger),
		renderer: r,
		md:       newMarkdown(),
		now:      time.Now,
	}, nil
}

// Build loads every record, renders the site into a staging directory and
// then swaps it in for the output directory. Any failure leaves the previous
// output untouched.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	now := b.now()
	buildID := uuid.NewString()
	log := b.logger.With("build", buildID)
	log.Info("Starting build process...")

	snap, err := b.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	events := timeline.FromSnapshot(snap, now)
	sections, err := b.renderSections(snap, events)
	if err != nil {
		return nil, err
	}

	items, err := collectContent(b.cfg.ContentDir, b.md, log)
	if err != nil {
		return nil, err
	}
	log.Info("Content collected", "items", len(items))

	layoutsFS, defaults := layoutsFor(b.cfg.LayoutsDir)
	if defaults {
		log.Debug("Using embedded layouts", "missingDir", b.cfg.LayoutsDir)
	}
	layouts, err := loadLayouts(layoutsFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load layouts: %w", err)
	}
	if !layouts.Has("home.html") {
		return nil, errors.New("required layout home.html not found")
	}

	out := b.cfg.OutputDir
	stage, err := newStagingDir(out)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			os.RemoveAll(stage)
		}
	}()

	if err := copyStatic(b.cfg.StaticDir, stage); err != nil {
		return nil, err
	}

	res := &Result{BuildID: buildID, OutputDir: out, Items: len(items), Events: len(events)}
	if b.cfg.Calendar {
		ok, err := writeCalendar(filepath.Join(stage, calendarFile), events, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warn("Timeline has no dated events, skipping calendar export")
		}
		res.Calendar = ok
	}

	base := model.PageData{
		SiteTitle:   b.siteTitle(snap),
		Description: render.PlainText(firstNonEmpty(snap.Bio.ShortBio, snap.Bio.Bio), descriptionLen),
		BaseURL:     strings.TrimSuffix(b.cfg.BaseURL, "/"),
		BuildID:     buildID,
		Theme:       b.cfg.Theme,
		Calendar:    res.Calendar,
		Bio:         snap.Bio,
		Sections:    sections,
	}

	home := base
	home.Page = "home"
	if err := writePage(layouts, "home.html", filepath.Join(stage, "index.html"), home); err != nil {
		return nil, err
	}
	res.Pages++

	for _, lp := range listPages {
		if !layouts.Has(lp.layout) {
			log.Warn("Layout not found, skipping page", "layout", lp.layout)
			continue
		}
		data := base
		data.PageTitle = lp.title
		data.Page = lp.page
		if err := writePage(layouts, lp.layout, filepath.Join(stage, lp.dir, "index.html"), data); err != nil {
			return nil, err
		}
		res.Pages++
	}

	for _, item := range items {
		if item.Permalink == "/" {
			log.Warn("Content item would replace the home page, skipping", "file", item.SourcePath)
			continue
		}
		layout := itemLayout(layouts, item)
		if layout == "" {
			log.Warn("No layout for content item, skipping", "file", item.SourcePath)
			continue
		}
		data := base
		data.PageTitle = item.Title
		data.Page = item.Type
		data.Item = item
		if item.Summary != "" {
			data.Description = item.Summary
		}
		dst := filepath.Join(stage, filepath.FromSlash(strings.Trim(item.Permalink, "/")), "index.html")
		if err := writePage(layouts, layout, dst, data); err != nil {
			return nil, err
		}
		log.Debug("Generated page", "permalink", item.Permalink, "layout", layout)
		res.Pages++
	}

	if err := replaceDir(stage, out); err != nil {
		return nil, err
	}
	committed = true

	res.Duration = time.Since(start)
	log.Info("Build complete", "pages", res.Pages, "events", res.Events, "output", out, "duration", res.Duration)
	return res, nil
}

func (b *Builder) renderSections(snap *model.Snapshot, events []timeline.Event) (map[string]template.HTML, error) {
	r := b.renderer
	steps := []struct {
		name string
		fn   func() (template.HTML, error)
	}{
		{"bio", func() (template.HTML, error) { return r.Bio(snap.Bio) }},
		{"links", func() (template.HTML, error) { return r.SocialLinks(snap.Bio) }},
		{"twitter", func() (template.HTML, error) { return r.Twitter(snap.Bio) }},
		{"news", func() (template.HTML, error) { return r.News(snap.News) }},
		{"education", func() (template.HTML, error) { return r.Education(snap.Education) }},
		{"teaching", func() (template.HTML, error) { return r.Teaching(snap.Teaching) }},
		{"experience", func() (template.HTML, error) { return r.Experience(snap.Experience) }},
		{"research", func() (template.HTML, error) { return r.Research(snap.Research) }},
		{"honors", func() (template.HTML, error) { return r.Honors(snap.Extracurricular) }},
		{"timeline", func() (template.HTML, error) { return r.Timeline(events) }},
		{"selected-works", func() (template.HTML, error) { return r.SelectedWorks(snap.Publications) }},
		{"resume-papers", func() (template.HTML, error) { return r.ResumePapers(snap.Publications) }},
		{"blogs", func() (template.HTML, error) { return r.Blogs(snap.Blogs) }},
		{"selected-blogs", func() (template.HTML, error) { return r.SelectedBlogs(snap.Blogs) }},
		{"selected-repos", func() (template.HTML, error) { return r.SelectedRepos(snap.Works) }},
	}

	sections := make(map[string]template.HTML, len(steps))
	for _, s := range steps {
		html, err := s.fn()
		if err != nil {
			return nil, fmt.Errorf("failed to render %s section: %w", s.name, err)
		}
		sections[s.name] = html
	}
	return sections, nil
}

func (b *Builder) siteTitle(snap *model.Snapshot) string {
	if b.cfg.SiteTitle != "" {
		return b.cfg.SiteTitle
	}
	if snap.Bio != nil && snap.Bio.Name != "" {
		return snap.Bio.Name
	}
	return "Home"
}

// itemLayout resolves the layout for a content item: its frontmatter layout,
// then single-<type>.html, then single.html.
func itemLayout(layouts *layoutSet, item *model.ContentItem) string {
	candidates := []string{
		item.Layout,
		"single-" + item.Type + ".html",
		defaultSingleLayout,
	}
	for _, c := range candidates {
		if c != "" && layouts.Has(c) {
			return c
		}
	}
	return ""
}

func writePage(layouts *layoutSet, layout, dst string, data model.PageData) error {
	var buf bytes.Buffer
	if err := layouts.Execute(&buf, layout, data); err != nil {
		return fmt.Errorf("failed to execute layout %s for %s: %w", layout, dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// newStagingDir creates an empty directory next to out where a build is
// assembled before it replaces out.
func newStagingDir(out string) (string, error) {
	parent := filepath.Dir(filepath.Clean(out))
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", fmt.Errorf("failed to create parent of output directory %s: %w", out, err)
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(out)+"-build-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory for %s: %w", out, err)
	}
	if err := os.Chmod(stage, 0755); err != nil {
		os.RemoveAll(stage)
		return "", fmt.Errorf("failed to set permissions on %s: %w", stage, err)
	}
	return stage, nil
}

// replaceDir swaps the finished build in stage into place at out.
func replaceDir(stage, out string) error {
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("failed to clean output directory %s: %w", out, err)
	}
	if err := os.Rename(stage, out); err != nil {
		return fmt.Errorf("failed to move build into %s: %w", out, err)
	}
	return nil
}

// writeCalendar exports the timeline to path. It reports false, without
// writing anything, when no event carries a usable date.
func writeCalendar(path string, events []timeline.Event, now time.Time) (bool, error) {
	var buf bytes.Buffer
	if err := timeline.WriteICS(&buf, events, now); err != nil {
		if errors.Is(err, timeline.ErrNoDatedEvents) {
			return false, nil
		}
		return false, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
