package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/adnanhd/adnanhd.github.io/internal/model"
)

type platform struct {
	label string
	icon  string
	href  func(id string) string
}

var platforms = map[string]platform{
	"email":            {"Email", "fas fa-envelope", func(id string) string { return "mailto:" + id }},
	"github":           {"GitHub", "fab fa-github", prefixed("https://github.com/")},
	"linkedin":         {"LinkedIn", "fab fa-linkedin", prefixed("https://linkedin.com/in/")},
	"google_scholar":   {"Google Scholar", "ai ai-google-scholar", prefixed("https://scholar.google.com/citations?user=")},
	"twitter":          {"Twitter", "fab fa-twitter", prefixed("https://twitter.com/")},
	"orcid":            {"ORCID", "ai ai-orcid", prefixed("https://orcid.org/")},
	"acm":              {"ACM DL", "ai ai-acm", prefixed("https://dl.acm.org/profile/")},
	"ieee":             {"IEEE Xplore", "ai ai-ieee", prefixed("https://ieeexplore.ieee.org/author/")},
	"dblp":             {"DBLP", "ai ai-dblp", prefixed("https://dblp.org/pid/")},
	"semantic_scholar": {"Semantic Scholar", "ai ai-semantic-scholar", prefixed("https://www.semanticscholar.org/author/")},
}

func prefixed(base string) func(string) string {
	return func(id string) string { return base + url.PathEscape(id) }
}

type socialView struct {
	Href     template.URL
	Label    string
	Icon     string
	External bool
}

type customLinkView struct {
	Name     string
	URL      string
	External bool
}

// Bio renders the long biography. Paragraphs are separated by blank lines
// and may contain inline HTML.
func (r *Renderer) Bio(bio *model.Bio) (template.HTML, error) {
	if bio == nil || strings.TrimSpace(bio.Bio) == "" {
		return "", nil
	}
	return r.Markdown(bio.Bio)
}

// SocialLinks renders the profile links in the order they were declared,
// followed by custom links. Blank ids and unknown platforms are skipped.
func (r *Renderer) SocialLinks(bio *model.Bio) (template.HTML, error) {
	if bio == nil {
		return "", nil
	}
	var social []socialView
	for _, link := range bio.Social {
		id := strings.TrimSpace(link.ID)
		if id == "" {
			continue
		}
		p, ok := platforms[link.Platform]
		if !ok {
			continue
		}
		href := p.href(id)
		social = append(social, socialView{
			// platform templates only produce https: and mailto: URLs
			Href:     template.URL(href),
			Label:    p.label,
			Icon:     p.icon,
			External: !strings.HasPrefix(href, "mailto:"),
		})
	}
	var custom []customLinkView
	for _, link := range bio.CustomLinks {
		custom = append(custom, customLinkView{
			Name:     link.Name,
			URL:      link.URL,
			External: strings.HasPrefix(link.URL, "http"),
		})
	}
	if len(social) == 0 && len(custom) == 0 {
		return "", nil
	}
	return r.execute("social", struct {
		Social []socialView
		Custom []customLinkView
	}{social, custom})
}

// Twitter renders the embedded timeline anchor when the bio lists a twitter handle.
func (r *Renderer) Twitter(bio *model.Bio) (template.HTML, error) {
	if bio == nil {
		return "", nil
	}
	handle, ok := bio.Social.Lookup("twitter")
	handle = strings.TrimSpace(handle)
	if !ok || handle == "" {
		return "", nil
	}
	theme := r.opts.Theme
	if theme == "" {
		theme = "light"
	}
	return r.execute("twitter", struct {
		Href   string
		Handle string
		Theme  string
	}{
		Href:   "https://twitter.com/" + url.PathEscape(handle) + "?ref_src=twsrc%5Etfw",
		Handle: handle,
		Theme:  theme,
	})
}
