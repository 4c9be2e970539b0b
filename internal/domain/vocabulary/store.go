package vocabulary

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Source feeds terms, codes, and abbreviations into a Builder before freeze.
type Source interface {
	Name() string
	Load(ctx context.Context, b *Builder) error
}

// Builder accumulates vocabulary entries. It is not safe for concurrent use;
// build the vocabulary on startup, then Freeze it for shared read access.
type Builder struct {
	terms   map[string]*MedicalTerm
	codes   map[string]*MedicalCode
	abbrevs map[string]string
}

func NewBuilder() *Builder {
	return &Builder{
		terms:   make(map[string]*MedicalTerm),
		codes:   make(map[string]*MedicalCode),
		abbrevs: make(map[string]string),
	}
}

// AddTerm registers a term together with its synonyms and abbreviations.
// A later term with the same canonical name replaces the earlier one.
func (b *Builder) AddTerm(t MedicalTerm) error {
	if strings.TrimSpace(t.CanonicalName) == "" {
		return fmt.Errorf("term canonical name must not be empty")
	}
	key := strings.ToLower(t.CanonicalName)
	tc := t
	b.terms[key] = &tc
	for _, abbrev := range t.Abbreviations {
		b.abbrevs[strings.ToLower(abbrev)] = key
	}
	return nil
}

// AddCode registers a code entry keyed by (system, code).
func (b *Builder) AddCode(c MedicalCode) error {
	if c.Code == "" {
		return fmt.Errorf("code must not be empty")
	}
	if c.System == "" {
		return fmt.Errorf("code %s: system must not be empty", c.Code)
	}
	cc := c
	b.codes[cc.Key()] = &cc
	return nil
}

// AddAbbreviation registers a standalone abbreviation expansion.
func (b *Builder) AddAbbreviation(abbrev, expansion string) error {
	if abbrev == "" || expansion == "" {
		return fmt.Errorf("abbreviation and expansion must not be empty")
	}
	b.abbrevs[strings.ToLower(abbrev)] = strings.ToLower(expansion)
	return nil
}

// Load applies a source to the builder.
func (b *Builder) Load(ctx context.Context, src Source) error {
	if err := src.Load(ctx, b); err != nil {
		return fmt.Errorf("load vocabulary source %s: %w", src.Name(), err)
	}
	return nil
}

// Freeze produces an immutable Store. The builder must not be reused after.
func (b *Builder) Freeze() *Store {
	s := &Store{
		terms:    b.terms,
		synonyms: make(map[string]string),
		abbrevs:  b.abbrevs,
		codes:    b.codes,
		bySystem: make(map[System][]*MedicalCode),
		index:    make(map[string][]*MedicalCode),
	}

	for key, term := range b.terms {
		s.termKeys = append(s.termKeys, key)
		for _, syn := range term.Synonyms {
			s.synonyms[strings.ToLower(syn)] = key
		}
	}
	sort.Strings(s.termKeys)

	for _, code := range b.codes {
		s.bySystem[code.System] = append(s.bySystem[code.System], code)
		surfaces := append([]string{code.Description, code.Code}, code.Synonyms...)
		for _, surface := range surfaces {
			k := strings.ToLower(surface)
			s.index[k] = append(s.index[k], code)
		}
	}
	for sys := range s.bySystem {
		codes := s.bySystem[sys]
		sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })
	}
	for k := range s.index {
		s.indexTerms = append(s.indexTerms, k)
		codes := s.index[k]
		sort.Slice(codes, func(i, j int) bool { return codes[i].Key() < codes[j].Key() })
	}
	sort.Strings(s.indexTerms)

	for _, key := range s.termKeys {
		term := s.terms[key]
		s.surfaces = append(s.surfaces, SurfaceForm{
			Text:      key,
			Canonical: term.CanonicalName,
			Kind:      term.Kind,
			Category:  term.Category,
		})
		for _, syn := range term.Synonyms {
			s.surfaces = append(s.surfaces, SurfaceForm{
				Text:      strings.ToLower(syn),
				Canonical: term.CanonicalName,
				Kind:      term.Kind,
				Category:  term.Category,
				Synonym:   true,
			})
		}
	}

	return s
}

// Store is a frozen vocabulary. All lookups are read-only and safe for
// unsynchronized concurrent use.
type Store struct {
	terms      map[string]*MedicalTerm
	termKeys   []string
	synonyms   map[string]string
	abbrevs    map[string]string
	codes      map[string]*MedicalCode
	bySystem   map[System][]*MedicalCode
	index      map[string][]*MedicalCode
	indexTerms []string
	surfaces   []SurfaceForm
}

// Term looks up a term by its canonical name, case-insensitively.
func (s *Store) Term(name string) (*MedicalTerm, bool) {
	t, ok := s.terms[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Expansion returns the expansion for an abbreviation, case-insensitively.
func (s *Store) Expansion(abbrev string) (string, bool) {
	exp, ok := s.abbrevs[strings.ToLower(abbrev)]
	return exp, ok
}

// NormalizeTerm resolves free text to its canonical term. Resolution order is
// direct match, synonym, abbreviation, then fuzzy word-overlap matching.
func (s *Store) NormalizeTerm(text string) (Normalization, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return Normalization{}, false
	}

	if term, ok := s.terms[key]; ok {
		return s.normalization(text, term, MatchDirect, 1.0), true
	}
	if canonical, ok := s.synonyms[key]; ok {
		return s.normalization(text, s.terms[canonical], MatchSynonym, 0.95), true
	}
	if exp, ok := s.abbrevs[key]; ok {
		if term, ok := s.terms[exp]; ok {
			return s.normalization(text, term, MatchAbbreviation, 0.9), true
		}
		if canonical, ok := s.synonyms[exp]; ok {
			return s.normalization(text, s.terms[canonical], MatchAbbreviation, 0.9), true
		}
	}
	return s.fuzzyMatch(text, key)
}

func (s *Store) normalization(input string, term *MedicalTerm, method string, conf float64) Normalization {
	return Normalization{
		Input:      input,
		Normalized: term.CanonicalName,
		Kind:       term.Kind,
		Category:   term.Category,
		Method:     method,
		Confidence: conf,
	}
}

// fuzzyMatch scores candidates by word overlap. A candidate needs more than
// 50% overlap to be considered and more than 60% to be returned.
func (s *Store) fuzzyMatch(input, key string) (Normalization, bool) {
	inputWords := wordSet(key)
	var best *MedicalTerm
	bestScore := 0.0

	for _, termKey := range s.termKeys {
		term := s.terms[termKey]
		if score := overlapScore(inputWords, wordSet(termKey)); score > bestScore && score > 0.5 {
			bestScore = score
			best = term
		}
		for _, syn := range term.Synonyms {
			if score := overlapScore(inputWords, wordSet(strings.ToLower(syn))); score > bestScore && score > 0.5 {
				bestScore = score
				best = term
			}
		}
	}

	if best == nil || bestScore <= 0.6 {
		return Normalization{}, false
	}
	return s.normalization(input, best, MatchFuzzy, bestScore), true
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}

func overlapScore(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	overlap := 0
	for w := range a {
		if _, ok := b[w]; ok {
			overlap++
		}
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(overlap) / float64(max)
}

// Code looks up a code by system and code value.
func (s *Store) Code(system System, code string) (*MedicalCode, bool) {
	c, ok := s.codes[string(system)+":"+code]
	return c, ok
}

// CodesBySystem returns all codes in a system, ordered by code value.
func (s *Store) CodesBySystem(system System) []*MedicalCode {
	return s.bySystem[system]
}

// CodesByCategory returns codes matching a category, optionally scoped to one
// system. Pass an empty system to search all systems.
func (s *Store) CodesByCategory(category string, system System) []*MedicalCode {
	want := strings.ToLower(category)
	var out []*MedicalCode
	if system != "" {
		for _, c := range s.bySystem[system] {
			if strings.ToLower(c.Category) == want {
				out = append(out, c)
			}
		}
		return out
	}
	var systems []System
	for sys := range s.bySystem {
		systems = append(systems, sys)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })
	for _, sys := range systems {
		for _, c := range s.bySystem[sys] {
			if strings.ToLower(c.Category) == want {
				out = append(out, c)
			}
		}
	}
	return out
}

// IndexLookup returns codes indexed under an exact surface form.
func (s *Store) IndexLookup(query string) []*MedicalCode {
	return s.index[strings.ToLower(query)]
}

// IndexTerms returns every indexed surface form in sorted order.
func (s *Store) IndexTerms() []string {
	return s.indexTerms
}

// SurfaceForms returns every canonical name and synonym, lowercased, for
// substring matching.
func (s *Store) SurfaceForms() []SurfaceForm {
	return s.surfaces
}

// Suggestions returns auto-completion candidates for a partial term, best
// matches first. Category filters when non-empty.
func (s *Store) Suggestions(partial, category string, limit int) []TermSuggestion {
	if limit <= 0 {
		limit = 5
	}
	prefix := strings.ToLower(partial)
	want := strings.ToLower(category)
	best := make(map[string]TermSuggestion)

	add := func(term *MedicalTerm, conf float64, matchType string) {
		if want != "" && term.Category != want {
			return
		}
		if prev, ok := best[term.CanonicalName]; ok && prev.Confidence >= conf {
			return
		}
		best[term.CanonicalName] = TermSuggestion{
			Term:       term.CanonicalName,
			Category:   term.Category,
			Confidence: conf,
			Type:       matchType,
		}
	}

	for _, key := range s.termKeys {
		if strings.HasPrefix(key, prefix) {
			add(s.terms[key], 1.0, "exact_match")
		}
	}
	for syn, canonical := range s.synonyms {
		if strings.HasPrefix(syn, prefix) {
			add(s.terms[canonical], 0.9, "synonym_match")
		}
	}
	for abbrev, target := range s.abbrevs {
		if strings.HasPrefix(abbrev, prefix) {
			if term, ok := s.terms[target]; ok {
				add(term, 0.8, "abbreviation_match")
			}
		}
	}

	out := make([]TermSuggestion, 0, len(best))
	for _, sg := range best {
		out = append(out, sg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Stats reports the vocabulary content summary.
func (s *Store) Stats() Stats {
	st := Stats{
		Terms:         len(s.terms),
		Synonyms:      len(s.synonyms),
		Abbreviations: len(s.abbrevs),
		Codes:         len(s.codes),
		SearchTerms:   len(s.indexTerms),
		Categories:    make(map[string]int),
		CodesBySystem: make(map[System]int),
	}
	for _, term := range s.terms {
		st.Categories[term.Category]++
	}
	for sys, codes := range s.bySystem {
		st.CodesBySystem[sys] = len(codes)
	}
	return st
}
