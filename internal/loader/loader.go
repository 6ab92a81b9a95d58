package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v2"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
)

// Resource names, in load order.
const (
	Bio             = "bio"
	Education       = "education"
	Teaching        = "teaching"
	Experience      = "experience"
	Research        = "research"
	Extracurricular = "extracurricular"
	News            = "news"
	Publications    = "publications"
	Blogs           = "blogs"
	Works           = "works"
)

// Resources lists every resource the site needs, in the order they are loaded.
var Resources = []string{
	Bio, Education, Teaching, Experience, Research,
	Extracurricular, News, Publications, Blogs, Works,
}

// ErrLoadFailure matches every error returned by Load.
var ErrLoadFailure = errors.New("load failure")

// LoadError reports the resource that stopped a load.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoadFailure, e.Err}
}

// Loader fetches and decodes the site records one after another.
type Loader struct {
	source Source
	logger *slog.Logger
}

// New returns a Loader reading from src. A nil logger discards output.
func New(src Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{source: src, logger: logger}
}

// Load fetches every resource in order and stops at the first failure. It
// returns either a complete snapshot or a *LoadError, never partial data.
func (l *Loader) Load(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Bio:             &model.Bio{},
		Education:       &model.EducationRecord{},
		Teaching:        &model.TeachingRecord{},
		Experience:      &model.ExperienceRecord{},
		Research:        &model.ResearchRecord{},
		Extracurricular: &model.ExtracurricularRecord{},
		News:            &model.NewsRecord{},
		Publications:    &model.PublicationRecord{},
		Blogs:           &model.BlogRecord{},
		Works:           &model.WorkRecord{},
	}
	targets := map[string]interface{}{
		Bio:             snap.Bio,
		Education:       snap.Education,
		Teaching:        snap.Teaching,
		Experience:      snap.Experience,
		Research:        snap.Research,
		Extracurricular: snap.Extracurricular,
		News:            snap.News,
		Publications:    snap.Publications,
		Blogs:           snap.Blogs,
		Works:           snap.Works,
	}

	l.logger.Info("Loading site data", "resources", len(Resources))
	for _, name := range Resources {
		if err := ctx.Err(); err != nil {
			return nil, &LoadError{Resource: name, Err: err}
		}
		if err := l.loadOne(ctx, name, targets[name]); err != nil {
			l.logger.Debug("Failed to load resource", "resource", name, "error", err)
			return nil, &LoadError{Resource: name, Err: err}
		}
		l.logger.Debug("Loaded resource", "resource", name)
	}
	l.logger.Info("All site data loaded")
	return snap, nil
}

func (l *Loader) loadOne(ctx context.Context, name string, out interface{}) error {
	data, err := l.source.Fetch(ctx, name)
	if err != nil {
		return err
	}
	return decode(data, out, func(typeErr *yaml.TypeError) {
		l.logger.Warn("Resource has unexpected shape, keeping what decoded",
			"resource", name, "problems", typeErr.Errors)
	})
}

// decode unmarshals YAML into out. Type mismatches leave the fields that did
// decode in place and are reported through onTypeErr instead of failing.
func decode(data []byte, out interface{}, onTypeErr func(*yaml.TypeError)) error {
	err := yaml.Unmarshal(data, out)
	if err == nil {
		return nil
	}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		if onTypeErr != nil {
			onTypeErr(typeErr)
		}
		return nil
	}
	return fmt.Errorf("parse yaml: %w", err)
}
