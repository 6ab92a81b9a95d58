package timeline

import "github.com/adnanhd/adnanhd.github.io/internal/model"

// Kind tells renderers which row shape an event needs.
type Kind string

const (
	KindExperience  Kind = "experience"
	KindPublication Kind = "publication"
)

// Event is one row of the unified timeline. Experience events carry
// Organization, EndDate and Description; publication events carry Authors,
// Venue and Links. Events own their Links slice.
type Event struct {
	Kind         Kind
	Date         string
	EndDate      string
	Title        string
	Organization string
	Description  string
	Authors      string
	Venue        string
	Links        []model.Link
}

func experienceEvent(title, organization, start, end, description string) Event {
	return Event{
		Kind:         KindExperience,
		Date:         start,
		EndDate:      end,
		Title:        title,
		Organization: organization,
		Description:  description,
	}
}

func publicationEvent(p model.Paper) Event {
	var links []model.Link
	if len(p.Links) > 0 {
		links = append([]model.Link(nil), p.Links...)
	}
	return Event{
		Kind:    KindPublication,
		Date:    p.Date,
		Title:   p.Title,
		Authors: p.Authors,
		Venue:   p.DisplayVenue(),
		Links:   links,
	}
}
