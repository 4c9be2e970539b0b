package extract

import (
	"regexp"
	"strings"

	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

const (
	termMatchConfidence    = 0.85
	synonymMatchConfidence = 0.80
)

type surfacePattern struct {
	re      *regexp.Regexp
	surface vocabulary.SurfaceForm
}

// TermMatcher finds known vocabulary terms and their synonyms in free text.
// Every occurrence is reported; overlap resolution happens later.
type TermMatcher struct {
	patterns []surfacePattern
}

// NewTermMatcher compiles a word-bounded pattern for every surface form in
// the store. The store is frozen, so this happens once per process.
func NewTermMatcher(store *vocabulary.Store) *TermMatcher {
	m := &TermMatcher{}
	for _, s := range store.SurfaceForms() {
		m.patterns = append(m.patterns, surfacePattern{
			re:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.Text) + `\b`),
			surface: s,
		})
	}
	return m
}

// Extract returns an entity for every term occurrence in the text. Canonical
// names score higher than synonyms; the entity label is the term's kind.
func (m *TermMatcher) Extract(text string) []Entity {
	var out []Entity
	for _, p := range m.patterns {
		conf := termMatchConfidence
		if p.surface.Synonym {
			conf = synonymMatchConfidence
		}
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			out = append(out, Entity{
				Text:           text[loc[0]:loc[1]],
				Label:          strings.ToUpper(p.surface.Kind),
				Start:          loc[0],
				End:            loc[1],
				Confidence:     conf,
				NormalizedForm: p.surface.Canonical,
			})
		}
	}
	return out
}
