package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

const (
	conventionalBaseLayout = "base.html"
	conventionalPartials   = "partials"
	defaultSingleLayout    = "single.html"
)

//go:embed defaults
var defaultsFS embed.FS

func defaultLayouts() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults/layouts")
	if err != nil {
		panic(err)
	}
	return sub
}

func defaultStatic() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults/static")
	if err != nil {
		panic(err)
	}
	return sub
}

// layoutSet holds one template per page layout. Every page template is a
// clone of base.html plus partials with the page file parsed on top, so pages
// can each define their own "main" block.
type layoutSet struct {
	pages map[string]*template.Template
}

// layoutsFor picks the user's layouts directory when it exists, otherwise the
// embedded defaults. The bool reports whether defaults were used.
func layoutsFor(dir string) (fs.FS, bool) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir), false
		}
	}
	return defaultLayouts(), true
}

func loadLayouts(fsys fs.FS) (*layoutSet, error) {
	var basePath string
	var partials, pages []string

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case p == conventionalBaseLayout:
			basePath = p
		case strings.HasPrefix(p, conventionalPartials+"/"):
			partials = append(partials, p)
		default:
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files: %w", err)
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found at the root of the layouts directory", conventionalBaseLayout)
	}

	base, err := template.ParseFS(fsys, append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base.html and partials: %w", err)
	}

	set := &layoutSet{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", p, err)
		}
		tmpl, err := clone.ParseFS(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout %s: %w", p, err)
		}
		set.pages[path.Base(p)] = tmpl
	}
	return set, nil
}

func (l *layoutSet) Has(name string) bool {
	_, ok := l.pages[name]
	return ok
}

func (l *layoutSet) Execute(w io.Writer, name string, data interface{}) error {
	tmpl, ok := l.pages[name]
	if !ok {
		return fmt.Errorf("layout %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, name, data)
}
