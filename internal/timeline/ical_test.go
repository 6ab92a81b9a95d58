package timeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
)

func TestWriteICS(t *testing.T) {
	events := []Event{
		{Kind: KindExperience, Title: "PhD", Organization: "X", Date: "2021", EndDate: "Present"},
		{Kind: KindPublication, Title: "P1", Authors: "A", Venue: "V", Date: "2020",
			Links: []model.Link{{Name: "PDF", URL: "https://example.org/p1.pdf"}}},
		{Kind: KindPublication, Title: "undated"},
	}
	var buf bytes.Buffer
	if err := WriteICS(&buf, events, fixedNow); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:PhD", "SUMMARY:P1", "LOCATION:X", "DTSTART;VALUE=DATE:20210101"} {
		if !strings.Contains(out, want) {
			t.Fatalf("calendar missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "undated") {
		t.Fatalf("undated event exported:\n%s", out)
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("VEVENT count = %d, want 2", got)
	}
}

func TestWriteICSWithoutDatedEvents(t *testing.T) {
	var buf bytes.Buffer
	err := WriteICS(&buf, []Event{{Kind: KindExperience, Title: "no date"}}, fixedNow)
	if !errors.Is(err, ErrNoDatedEvents) {
		t.Fatalf("err = %v, want ErrNoDatedEvents", err)
	}
}

func TestEventUIDIsStable(t *testing.T) {
	ev := Event{Kind: KindPublication, Title: "P1", Venue: "V", Date: "2020"}
	if EventUID(ev) != EventUID(ev) {
		t.Fatalf("EventUID not deterministic")
	}
	other := ev
	other.Title = "P2"
	if EventUID(ev) == EventUID(other) {
		t.Fatalf("distinct events share a UID")
	}
}
