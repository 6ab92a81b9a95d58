package model

import (
	"html/template"
	"time"
)

// ContentItem represents a markdown page under content/ (e.g., a blog post).
type ContentItem struct {
	Title       string
	Date        time.Time
	DateLabel   string
	Type        string
	SourcePath  string
	Permalink   string
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
	Summary     string
	Layout      string
}

// Snapshot holds every record of one load. It is built once by the loader
// and only read afterwards; renderers and the timeline take it by pointer
// but never write to it.
type Snapshot struct {
	Bio             *Bio
	Education       *EducationRecord
	Teaching        *TeachingRecord
	Experience      *ExperienceRecord
	Research        *ResearchRecord
	Extracurricular *ExtracurricularRecord
	News            *NewsRecord
	Publications    *PublicationRecord
	Blogs           *BlogRecord
	Works           *WorkRecord
}
