package render

import (
	"html/template"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
	"github.com/adnanhd/adnanhd.github.io/internal/timeline"
)

const (
	noBlogsMessage         = "No blog posts yet. Check back soon!"
	noSelectedBlogsMessage = "No selected blogs yet."
	noSelectedWorksMessage = "No selected works yet."
)

func (r *Renderer) News(rec *model.NewsRecord) (template.HTML, error) {
	if rec == nil || len(rec.Items) == 0 {
		return "", nil
	}
	return r.execute("news", rec.Items)
}

// Timeline renders merged events in the order given.
func (r *Renderer) Timeline(events []timeline.Event) (template.HTML, error) {
	return r.execute("timeline", events)
}

// Blogs renders the full blog index.
func (r *Renderer) Blogs(rec *model.BlogRecord) (template.HTML, error) {
	if rec == nil || len(rec.Blogs) == 0 {
		return r.empty(noBlogsMessage)
	}
	return r.execute("blogs", rec.Blogs)
}

func (r *Renderer) SelectedBlogs(rec *model.BlogRecord) (template.HTML, error) {
	if rec == nil || rec.Blogs == nil {
		return "", nil
	}
	var selected []model.Blog
	for _, b := range rec.Blogs {
		if b.Selected {
			selected = append(selected, b)
		}
	}
	if len(selected) == 0 {
		return r.empty(noSelectedBlogsMessage)
	}
	return r.execute("selected-blogs", selected)
}

// SelectedRepos renders the works list shown on the about page.
func (r *Renderer) SelectedRepos(rec *model.WorkRecord) (template.HTML, error) {
	if rec == nil || rec.Works == nil {
		return "", nil
	}
	if len(rec.Works) == 0 {
		return r.empty(noSelectedWorksMessage)
	}
	return r.execute("works", rec.Works)
}
