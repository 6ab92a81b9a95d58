package render

import (
	"html/template"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
)

type paperCardView struct {
	Title     string
	Authors   template.HTML
	VenueTag  string
	VenueLink string
	VenueLine string
	Image     string
	Links     []model.Link
}

type paperCompactView struct {
	Title     string
	Authors   template.HTML
	Date      string
	Venue     string
	VenueLink string
	Links     []model.Link
}

// SelectedWorks renders a card for every paper marked selected.
func (r *Renderer) SelectedWorks(rec *model.PublicationRecord) (template.HTML, error) {
	if rec == nil {
		return "", nil
	}
	var cards []paperCardView
	for _, p := range rec.Papers {
		if !p.Selected {
			continue
		}
		tag := p.DisplayVenue()
		if tag == "" {
			tag = "Publication"
		}
		line := p.Venue
		if p.Date != "" {
			line += ", " + p.Date
		}
		cards = append(cards, paperCardView{
			Title:     p.Title,
			Authors:   r.highlightAuthors(p.Authors, `<span class="author-me">`, `</span>`),
			VenueTag:  tag,
			VenueLink: p.VenueLink,
			VenueLine: line,
			Image:     p.Image,
			Links:     p.Links,
		})
	}
	if len(cards) == 0 {
		return "", nil
	}
	return r.execute("publication-cards", cards)
}

// ResumePapers renders papers marked for the resume as compact citations:
// Authors (date). Title. Venue.
func (r *Renderer) ResumePapers(rec *model.PublicationRecord) (template.HTML, error) {
	if rec == nil {
		return "", nil
	}
	var refs []paperCompactView
	for _, p := range rec.Papers {
		if !p.Resume {
			continue
		}
		view := paperCompactView{
			Title:   p.Title,
			Authors: r.highlightAuthors(p.Authors, "<strong>", "</strong>"),
			Date:    p.Date,
			Venue:   p.Venue,
			Links:   p.Links,
		}
		if p.VenueLink != "" && p.VenueShort != "" {
			view.Venue = p.VenueShort
			view.VenueLink = p.VenueLink
		}
		refs = append(refs, view)
	}
	if len(refs) == 0 {
		return "", nil
	}
	return r.execute("publication-compact", refs)
}
