package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
)

type bulletView struct {
	Text       string
	CourseCode string
	CourseURL  string
}

type resumeItemView struct {
	Title       string
	Subtitle    string
	Date        string
	Description string
	Logo        string
	LogoLink    string
	Links       []model.Link
	Commitment  string
	Advisor     template.HTML
	Bullets     []bulletView
}

// dateRange joins start and end with " - ", dropping whichever is missing.
func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func (r *Renderer) bullets(items []string) []bulletView {
	if len(items) == 0 {
		return nil
	}
	out := make([]bulletView, 0, len(items))
	for _, b := range items {
		if r.course != nil {
			if m := r.course.FindStringSubmatch(b); m != nil {
				out = append(out, bulletView{
					Text:       m[3],
					CourseCode: m[1],
					CourseURL:  fmt.Sprintf(r.opts.CourseURLPattern, m[2]),
				})
				continue
			}
		}
		out = append(out, bulletView{Text: b})
	}
	return out
}

func (r *Renderer) resumeItem(title, subtitle, date, description, logo, logoLink, commitment, advisor string, links []model.Link, bullets []string) resumeItemView {
	return resumeItemView{
		Title:       title,
		Subtitle:    subtitle,
		Date:        date,
		Description: description,
		Logo:        logo,
		LogoLink:    logoLink,
		Links:       links,
		Commitment:  strings.TrimSpace(commitment),
		// advisor lines may carry links to the advisor's page
		Advisor: template.HTML(strings.TrimSpace(advisor)),
		Bullets: r.bullets(bullets),
	}
}

func (r *Renderer) positions(entries []model.Position) (template.HTML, error) {
	if len(entries) == 0 {
		return "", nil
	}
	items := make([]resumeItemView, 0, len(entries))
	for _, e := range entries {
		items = append(items, r.resumeItem(e.Position, e.Company, dateRange(e.StartDate, e.EndDate),
			e.Description, e.Logo, e.LogoLink, e.Commitment, e.Advisor, e.Links, e.Bullets))
	}
	return r.execute("resume-items", items)
}

// Education renders every degree, timelined or not.
func (r *Renderer) Education(rec *model.EducationRecord) (template.HTML, error) {
	if rec == nil || len(rec.Education) == 0 {
		return "", nil
	}
	items := make([]resumeItemView, 0, len(rec.Education))
	for _, e := range rec.Education {
		items = append(items, r.resumeItem(e.Degree, e.Institution, dateRange(e.StartDate, e.EndDate),
			e.Description, e.Logo, e.LogoLink, e.Commitment, e.Advisor, e.Links, e.Bullets))
	}
	return r.execute("resume-items", items)
}

func (r *Renderer) Teaching(rec *model.TeachingRecord) (template.HTML, error) {
	if rec == nil {
		return "", nil
	}
	return r.positions(rec.Teaching)
}

func (r *Renderer) Experience(rec *model.ExperienceRecord) (template.HTML, error) {
	if rec == nil {
		return "", nil
	}
	return r.positions(rec.Experience)
}

func (r *Renderer) Research(rec *model.ResearchRecord) (template.HTML, error) {
	if rec == nil {
		return "", nil
	}
	return r.positions(rec.Research)
}

// Honors renders the extracurricular honors list.
func (r *Renderer) Honors(rec *model.ExtracurricularRecord) (template.HTML, error) {
	if rec == nil || len(rec.Honors) == 0 {
		return "", nil
	}
	items := make([]resumeItemView, 0, len(rec.Honors))
	for _, h := range rec.Honors {
		items = append(items, r.resumeItem(h.Title, h.Organization, strings.TrimSpace(h.Date),
			h.Description, h.Logo, h.LogoLink, h.Commitment, h.Advisor, h.Links, h.Bullets))
	}
	return r.execute("resume-items", items)
}
