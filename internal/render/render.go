// Package render maps site records to HTML fragments. Every renderer is a
// pure function of its input: a nil record yields empty markup and missing
// optional fields drop the element that would have shown them.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options tunes site-specific rendering.
type Options struct {
	// AuthorName is shown, emphasized, wherever it or an alias appears in an author list.
	AuthorName    string
	AuthorAliases []string
	// CoursePrefix and CourseURLPattern turn bullets like "CENG 315 - Algorithms"
	// into catalog links; the pattern receives the course number via %s.
	CoursePrefix     string
	CourseURLPattern string
	// Theme is the data-theme hint for embedded widgets.
	Theme string
}

type Renderer struct {
	opts    Options
	tmpl    *template.Template
	md      goldmark.Markdown
	authors *regexp.Regexp
	course  *regexp.Regexp
}

// New parses the section templates and prepares the matchers implied by opts.
func New(opts Options) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse section templates: %w", err)
	}
	r := &Renderer{
		opts: opts,
		tmpl: tmpl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
	r.authors = authorPattern(opts.AuthorName, opts.AuthorAliases)
	if prefix := strings.TrimSpace(opts.CoursePrefix); prefix != "" && opts.CourseURLPattern != "" {
		r.course = regexp.MustCompile(`^(` + regexp.QuoteMeta(prefix) + ` (\d+))\s*-\s*(.+)$`)
	}
	return r, nil
}

func (r *Renderer) execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render: %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) empty(message string) (template.HTML, error) {
	return r.execute("empty", message)
}

// Markdown converts markdown (raw HTML allowed) to HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func authorPattern(name string, aliases []string) *regexp.Regexp {
	var alts []string
	for _, n := range append([]string{name}, aliases...) {
		if n = strings.TrimSpace(n); n != "" {
			alts = append(alts, regexp.QuoteMeta(template.HTMLEscapeString(n)))
		}
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(alts, "|"))
}

// highlightAuthors escapes authors and wraps every occurrence of the site
// owner's name (or alias) with open/close, printing the canonical name.
func (r *Renderer) highlightAuthors(authors, open, close string) template.HTML {
	escaped := template.HTMLEscapeString(authors)
	if r.authors == nil {
		return template.HTML(escaped)
	}
	canonical := template.HTMLEscapeString(r.opts.AuthorName)
	return template.HTML(r.authors.ReplaceAllStringFunc(escaped, func(match string) string {
		if canonical == "" {
			return open + match + close
		}
		return open + canonical + close
	}))
}
