package timeline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// ErrNoDatedEvents is returned by WriteICS when no event has a usable date.
var ErrNoDatedEvents = errors.New("timeline: no dated events to export")

const icsProductID = "-//adnanhd.github.io//timeline//EN"

// WriteICS encodes the dated events as an all-day iCalendar feed. Events
// whose date resolves to the zero time are skipped. UIDs are derived from
// the event content so subscribers see stable identities across builds.
func WriteICS(w io.Writer, events []Event, now time.Time) error {
	parser := DateParser{Now: func() time.Time { return now }}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)

	for _, ev := range events {
		start := parser.Parse(ev.Date)
		if start.IsZero() {
			continue
		}
		cal.Children = append(cal.Children, toICal(ev, start, parser, now))
	}
	if len(cal.Children) == 0 {
		return ErrNoDatedEvents
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("timeline: encode calendar: %w", err)
	}
	return nil
}

func toICal(ev Event, start time.Time, parser DateParser, now time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, EventUID(ev))
	ve.Props.SetText(ical.PropSummary, ev.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDate(ical.PropDateTimeStart, start)

	end := start.AddDate(0, 0, 1)
	if ev.EndDate != "" {
		if t := parser.Parse(ev.EndDate); t.After(start) {
			end = t
		}
	}
	ve.Props.SetDate(ical.PropDateTimeEnd, end)

	var desc []string
	switch ev.Kind {
	case KindExperience:
		if ev.Organization != "" {
			ve.Props.SetText(ical.PropLocation, ev.Organization)
		}
		if ev.Description != "" {
			desc = append(desc, ev.Description)
		}
	case KindPublication:
		if ev.Authors != "" {
			desc = append(desc, ev.Authors)
		}
		if ev.Venue != "" {
			desc = append(desc, ev.Venue)
		}
		for _, link := range ev.Links {
			desc = append(desc, link.Name+": "+link.URL)
		}
	}
	if len(desc) > 0 {
		ve.Props.SetText(ical.PropDescription, strings.Join(desc, "\n"))
	}
	return ve
}

// EventUID returns a deterministic identifier for ev.
func EventUID(ev Event) string {
	name := strings.Join([]string{string(ev.Kind), ev.Title, ev.Organization, ev.Venue, ev.Date}, "\x00")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
