package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

var (
	tokenRE         = regexp.MustCompile(`\S+`)
	nonWordRE       = regexp.MustCompile(`[^0-9A-Za-z_]+`)
	leadingPunctRE  = regexp.MustCompile(`^[^0-9A-Za-z_]+`)
	trailingPunctRE = regexp.MustCompile(`[^0-9A-Za-z_]+$`)
)

// Expander rewrites known medical abbreviations to their full forms before
// extraction, preserving the casing style and punctuation of each token.
type Expander struct {
	store *vocabulary.Store
}

// NewExpander creates an expander backed by the vocabulary store.
func NewExpander(store *vocabulary.Store) *Expander {
	return &Expander{store: store}
}

// Expand replaces every abbreviated token with its expansion. Tokens are
// whitespace-delimited; whitespace between them is kept intact so that
// line-oriented patterns still match the expanded text. Expanding an already
// expanded text changes nothing.
func (e *Expander) Expand(text string) string {
	return tokenRE.ReplaceAllStringFunc(text, func(token string) string {
		clean := strings.ToLower(nonWordRE.ReplaceAllString(token, ""))
		expansion, ok := e.store.Expansion(clean)
		if !ok {
			return token
		}

		switch {
		case isAllUpper(token):
			expansion = strings.ToUpper(expansion)
		case isTitle(token):
			expansion = titleCase(expansion)
		}

		// Punctuation around the abbreviation stays in place, so "(BP)"
		// becomes "(BLOOD PRESSURE)" and "Temp:" keeps its colon.
		return leadingPunctRE.FindString(token) + expansion + trailingPunctRE.FindString(token)
	})
}

// FindAbbreviations lists the known abbreviations present in the text, in
// order of appearance.
func (e *Expander) FindAbbreviations(text string) []string {
	var found []string
	for _, token := range strings.Fields(text) {
		clean := strings.ToLower(nonWordRE.ReplaceAllString(token, ""))
		if clean == "" {
			continue
		}
		if _, ok := e.store.Expansion(clean); ok {
			found = append(found, clean)
		}
	}
	return found
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isTitle(s string) bool {
	hasCased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		for j := 1; j < len(r); j++ {
			r[j] = unicode.ToLower(r[j])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
