package model

import "html/template"

// PageData is the context every layout is executed with.
type PageData struct {
	SiteTitle   string
	PageTitle   string
	Description string
	BaseURL     string
	BuildID     string
	Theme       string
	Page        string // active navigation entry
	Calendar    bool   // timeline.ics is published
	Bio         *Bio
	Sections    map[string]template.HTML
	Item        *ContentItem
}

// Section returns the rendered fragment mounted at name, or empty markup.
func (p PageData) Section(name string) template.HTML {
	return p.Sections[name]
}
