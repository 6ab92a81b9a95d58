package timeline

import (
	"sort"
	"time"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
)

// Source produces timeline events from one record. Implementations apply
// the per-entry inclusion flag and return nil for absent records.
type Source interface {
	Events() []Event
}

type educationSource struct{ rec *model.EducationRecord }

type positionSource struct{ entries []model.Position }

type publicationSource struct{ rec *model.PublicationRecord }

// FromEducation adapts education entries flagged as timelined.
func FromEducation(rec *model.EducationRecord) Source { return educationSource{rec} }

// FromExperience adapts experience entries flagged as timelined.
func FromExperience(rec *model.ExperienceRecord) Source {
	if rec == nil {
		return positionSource{}
	}
	return positionSource{rec.Experience}
}

// FromResearch adapts research entries flagged as timelined.
func FromResearch(rec *model.ResearchRecord) Source {
	if rec == nil {
		return positionSource{}
	}
	return positionSource{rec.Research}
}

// FromPublications adapts papers flagged as timelined.
func FromPublications(rec *model.PublicationRecord) Source { return publicationSource{rec} }

func (s educationSource) Events() []Event {
	if s.rec == nil {
		return nil
	}
	var out []Event
	for _, e := range s.rec.Education {
		if !e.Timelined {
			continue
		}
		out = append(out, experienceEvent(e.Degree, e.Institution, e.StartDate, e.EndDate, e.Description))
	}
	return out
}

func (s positionSource) Events() []Event {
	var out []Event
	for _, e := range s.entries {
		if !e.Timelined {
			continue
		}
		out = append(out, experienceEvent(e.Position, e.Company, e.StartDate, e.EndDate, e.Description))
	}
	return out
}

func (s publicationSource) Events() []Event {
	if s.rec == nil {
		return nil
	}
	var out []Event
	for _, p := range s.rec.Papers {
		if !p.Timelined {
			continue
		}
		out = append(out, publicationEvent(p))
	}
	return out
}

// Build merges the four timeline sources, newest first.
func Build(
	education *model.EducationRecord,
	experience *model.ExperienceRecord,
	research *model.ResearchRecord,
	publications *model.PublicationRecord,
) []Event {
	return Merge(time.Now(),
		FromEducation(education),
		FromExperience(experience),
		FromResearch(research),
		FromPublications(publications),
	)
}

// FromSnapshot merges the timeline records of snap.
func FromSnapshot(snap *model.Snapshot, now time.Time) []Event {
	if snap == nil {
		return nil
	}
	return Merge(now,
		FromEducation(snap.Education),
		FromExperience(snap.Experience),
		FromResearch(snap.Research),
		FromPublications(snap.Publications),
	)
}

// Merge concatenates the events of every source in argument order and sorts
// them by descending date. Events with equal dates keep their concatenation
// order. "Present" resolves to now for the whole merge.
func Merge(now time.Time, sources ...Source) []Event {
	type keyed struct {
		event Event
		key   time.Time
	}
	parser := DateParser{Now: func() time.Time { return now }}

	var all []keyed
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, ev := range src.Events() {
			all = append(all, keyed{event: ev, key: parser.Parse(ev.Date)})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].key.After(all[j].key)
	})

	events := make([]Event, len(all))
	for i, k := range all {
		events[i] = k.event
	}
	return events
}
