// Package resources holds the revision library: a fixed set of well-known
// references plus whatever the user lists in their config file.
package resources

import (
	"net/url"
	"strings"
)

// Kind classifies a resource for display.
type Kind string

const (
	KindWebsite Kind = "Website"
	KindPDF     Kind = "PDF"
	KindJournal Kind = "Journal"
	KindBook    Kind = "Book"
)

// Resource is one library entry.
type Resource struct {
	Title string
	Kind  Kind
	URL   string
}

// Openable reports whether URL points somewhere a browser can go.
// Placeholder links such as "#" are listed but not opened.
func (r Resource) Openable() bool {
	u, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Icon returns a one-glyph marker for the kind.
func (r Resource) Icon() string {
	switch r.Kind {
	case KindBook:
		return "📕"
	case KindWebsite:
		return "🌐"
	default:
		return "📄"
	}
}

var builtin = []Resource{
	{Title: "e-LA (e-Learning Anaesthesia)", Kind: KindWebsite, URL: "https://www.e-lfh.org.uk/programmes/anaesthesia/"},
	{Title: "RCoA 2024 Curriculum Guide", Kind: KindPDF, URL: "https://www.rcoa.ac.uk/training-careers/training-anaesthesia/2021-anaesthetics-curriculum"},
	{Title: "BJA Education", Kind: KindJournal, URL: "https://www.bjaed.org/"},
	{Title: "LITFL (Life in the Fast Lane)", Kind: KindWebsite, URL: "https://litfl.com/"},
	{Title: "Propofolology", Kind: KindWebsite, URL: "#"},
}

// Builtin returns the stock library.
func Builtin() []Resource {
	return append([]Resource(nil), builtin...)
}

// Library returns the stock entries followed by extra. Extras without a
// title are skipped; a missing kind defaults to Website.
func Library(extra []Resource) []Resource {
	out := Builtin()
	for _, r := range extra {
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			continue
		}
		if r.Kind == "" {
			r.Kind = KindWebsite
		}
		out = append(out, r)
	}
	return out
}
