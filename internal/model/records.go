package model

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Link is a named URL attached to papers, resume entries and bios.
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SocialLink is one platform/id pair from the bio's social block.
type SocialLink struct {
	Platform string
	ID       string
}

// SocialLinks keeps the platforms in the order they were written in bio.yaml.
type SocialLinks []SocialLink

// UnmarshalYAML decodes a YAML mapping while preserving key order.
func (s *SocialLinks) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ordered yaml.MapSlice
	if err := unmarshal(&ordered); err != nil {
		return err
	}
	out := make(SocialLinks, 0, len(ordered))
	for _, item := range ordered {
		platform := fmt.Sprint(item.Key)
		id := ""
		if item.Value != nil {
			id = fmt.Sprint(item.Value)
		}
		out = append(out, SocialLink{Platform: platform, ID: id})
	}
	*s = out
	return nil
}

// Lookup returns the id registered for platform.
func (s SocialLinks) Lookup(platform string) (string, bool) {
	for _, link := range s {
		if link.Platform == platform {
			return link.ID, true
		}
	}
	return "", false
}

type Bio struct {
	Name         string      `yaml:"name"`
	Title        string      `yaml:"title"`
	Affiliation  string      `yaml:"affiliation"`
	ProfileImage string      `yaml:"profile_image"`
	ShortBio     string      `yaml:"short_bio"`
	Bio          string      `yaml:"bio"`
	Social       SocialLinks `yaml:"social"`
	CustomLinks  []Link      `yaml:"custom_links"`
}

// Education is one degree. Timelined entries appear on the news timeline.
type Education struct {
	Degree      string   `yaml:"degree"`
	Institution string   `yaml:"institution"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Description string   `yaml:"description"`
	Logo        string   `yaml:"logo"`
	LogoLink    string   `yaml:"logo_link"`
	Links       []Link   `yaml:"links"`
	Commitment  string   `yaml:"commitment"`
	Advisor     string   `yaml:"advisor"`
	Bullets     []string `yaml:"bullets"`
	Timelined   bool     `yaml:"timelined"`
}

// Position is a job-like entry shared by the teaching, experience and research files.
type Position struct {
	Position    string   `yaml:"position"`
	Company     string   `yaml:"company"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Description string   `yaml:"description"`
	Logo        string   `yaml:"logo"`
	LogoLink    string   `yaml:"logo_link"`
	Links       []Link   `yaml:"links"`
	Commitment  string   `yaml:"commitment"`
	Advisor     string   `yaml:"advisor"`
	Bullets     []string `yaml:"bullets"`
	Timelined   bool     `yaml:"timelined"`
}

type Honor struct {
	Title        string   `yaml:"title"`
	Organization string   `yaml:"organization"`
	Date         string   `yaml:"date"`
	Description  string   `yaml:"description"`
	Logo         string   `yaml:"logo"`
	LogoLink     string   `yaml:"logo_link"`
	Links        []Link   `yaml:"links"`
	Commitment   string   `yaml:"commitment"`
	Advisor      string   `yaml:"advisor"`
	Bullets      []string `yaml:"bullets"`
}

type Paper struct {
	Title      string `yaml:"title"`
	Authors    string `yaml:"authors"`
	Venue      string `yaml:"venue"`
	VenueShort string `yaml:"venue_short"`
	VenueLink  string `yaml:"venue_link"`
	Date       string `yaml:"date"`
	Image      string `yaml:"image"`
	Links      []Link `yaml:"links"`
	Selected   bool   `yaml:"selected"`
	Resume     bool   `yaml:"resume"`
	Timelined  bool   `yaml:"timelined"`
}

// DisplayVenue prefers the short venue name.
func (p Paper) DisplayVenue() string {
	if p.VenueShort != "" {
		return p.VenueShort
	}
	return p.Venue
}

type NewsItem struct {
	Date    string `yaml:"date"`
	Content string `yaml:"content"`
	Link    string `yaml:"link"`
}

type Blog struct {
	Title       string `yaml:"title"`
	Path        string `yaml:"path"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Selected    bool   `yaml:"selected"`
}

type Work struct {
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

type EducationRecord struct {
	Education []Education `yaml:"education"`
}

type TeachingRecord struct {
	Teaching []Position `yaml:"teaching"`
}

type ExperienceRecord struct {
	Experience []Position `yaml:"experience"`
}

type ResearchRecord struct {
	Research []Position `yaml:"research"`
}

type ExtracurricularRecord struct {
	Honors []Honor `yaml:"honors"`
}

type NewsRecord struct {
	Items []NewsItem `yaml:"items"`
}

type PublicationRecord struct {
	Papers []Paper `yaml:"papers"`
}

type BlogRecord struct {
	Blogs []Blog `yaml:"blogs"`
}

type WorkRecord struct {
	Works []Work `yaml:"works"`
}
