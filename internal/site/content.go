package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
	"github.com/adnanhd/adnanhd.github.io/internal/timeline"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithUnsafe(),
		),
	)
}

// collectContent turns every markdown file under dir into a ContentItem,
// newest first with undated items last. A missing dir yields no items.
func collectContent(dir string, md goldmark.Markdown, logger *slog.Logger) ([]*model.ContentItem, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Debug("Content directory not found, skipping", "dir", dir)
		return nil, nil
	}

	var items []*model.ContentItem
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		item, err := contentItem(dir, path, md, logger)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", walkErr)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.IsZero() {
			return false
		}
		if items[j].Date.IsZero() {
			return true
		}
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func contentItem(root, path string, md goldmark.Markdown, logger *slog.Logger) (*model.ContentItem, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fm)
	if err != nil {
		logger.Warn("Could not parse frontmatter, treating as pure markdown", "file", path, "error", err)
		body = fileBytes
	}
	if fm == nil {
		fm = make(map[string]interface{})
	}

	var htmlBuffer bytes.Buffer
	if err := md.Convert(body, &htmlBuffer); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", path, err)
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get relative path for %s: %w", path, err)
	}
	relPath = filepath.ToSlash(relPath)

	title := stringField(fm, "title")
	if title == "" {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
		title = cases.Title(language.English).String(name)
	}

	itemType := "page"
	if dir := filepath.ToSlash(filepath.Dir(relPath)); dir != "." {
		itemType = strings.Split(dir, "/")[0]
	}
	if t := stringField(fm, "type"); t != "" {
		itemType = t
	}

	var date time.Time
	dateLabel := ""
	switch raw := fm["date"].(type) {
	case nil:
	case time.Time:
		date = raw
		dateLabel = raw.Format("2006-01-02")
	default:
		dateLabel = strings.TrimSpace(fmt.Sprint(raw))
		date = timeline.ParseDate(dateLabel)
		if dateLabel != "" && date.IsZero() {
			logger.Warn("Could not parse date", "file", path, "date", dateLabel)
		}
	}

	return &model.ContentItem{
		Title:       title,
		Date:        date,
		DateLabel:   dateLabel,
		Type:        itemType,
		SourcePath:  path,
		Permalink:   permalink(relPath),
		ContentHTML: template.HTML(htmlBuffer.String()),
		Frontmatter: fm,
		Summary:     stringField(fm, "summary"),
		Layout:      stringField(fm, "layout"),
	}, nil
}

// permalink maps blog/first-post.md to /blog/first-post/ and index.md files to their directory.
func permalink(relPath string) string {
	p := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	p = strings.TrimSuffix(p, "/index")
	if p == "index" {
		p = ""
	}
	p = "/" + strings.Trim(p, "/") + "/"
	if p == "//" {
		return "/"
	}
	return p
}

func stringField(fm map[string]interface{}, key string) string {
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
