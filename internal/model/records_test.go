package model

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestBioSocialKeepsFileOrder(t *testing.T) {
	src := strings.TrimSpace(`
name: Jane Doe
social:
  twitter: jdoe
  email: jane@example.org
  github: ""
  orcid: 0000-0001
`)
	var bio Bio
	if err := yaml.Unmarshal([]byte(src), &bio); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"twitter", "email", "github", "orcid"}
	if len(bio.Social) != len(want) {
		t.Fatalf("len(social) = %d, want %d", len(bio.Social), len(want))
	}
	for i, platform := range want {
		if bio.Social[i].Platform != platform {
			t.Fatalf("social[%d] = %q, want %q", i, bio.Social[i].Platform, platform)
		}
	}
	if id, ok := bio.Social.Lookup("twitter"); !ok || id != "jdoe" {
		t.Fatalf("Lookup(twitter) = %q, %v", id, ok)
	}
	if _, ok := bio.Social.Lookup("linkedin"); ok {
		t.Fatalf("Lookup(linkedin) should miss")
	}
}

func TestPaperDisplayVenue(t *testing.T) {
	if got := (Paper{Venue: "Long Venue", VenueShort: "LV"}).DisplayVenue(); got != "LV" {
		t.Fatalf("DisplayVenue = %q, want LV", got)
	}
	if got := (Paper{Venue: "Long Venue"}).DisplayVenue(); got != "Long Venue" {
		t.Fatalf("DisplayVenue = %q, want Long Venue", got)
	}
}

func TestRecordWithoutNestedKeyDecodesEmpty(t *testing.T) {
	var rec EducationRecord
	if err := yaml.Unmarshal([]byte("title: nothing here\n"), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Education != nil {
		t.Fatalf("expected nil education list, got %v", rec.Education)
	}
}
