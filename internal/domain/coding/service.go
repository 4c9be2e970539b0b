package coding

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

const (
	defaultSearchLimit = 10
	suggestionLimit    = 10
	wordMatchDiscount  = 0.7
	contextDiscount    = 0.6
	crossMapDiscount   = 0.8
	minSuggestWordLen  = 4
)

var wordRE = regexp.MustCompile(`[0-9A-Za-z_]+`)

// Service answers code search, validation, suggestion, hierarchy and
// cross-mapping queries against the frozen vocabulary store. The store never
// changes after startup, so methods are pure lookups and safe to call from
// any goroutine.
type Service struct {
	store *vocabulary.Store
}

func NewService(store *vocabulary.Store) *Service {
	return &Service{store: store}
}

// Search finds codes whose indexed surface (description, code value or
// synonym) matches the query. Exact index hits score 1.0; partial hits score
// by how much of the indexed term the query covers. Duplicates keep their
// best score.
func (s *Service) Search(query string, system vocabulary.System, limit int) []CodeMatch {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []CodeMatch
	for _, code := range s.store.IndexLookup(query) {
		if system != "" && code.System != system {
			continue
		}
		results = append(results, newMatch(code, 1.0, MatchExact))
	}

	for _, term := range s.store.IndexTerms() {
		if term == query || !strings.Contains(term, query) {
			continue
		}
		conf := float64(len(query)) / float64(len(term))
		for _, code := range s.store.IndexLookup(term) {
			if system != "" && code.System != system {
				continue
			}
			results = append(results, newMatch(code, conf, MatchPartial))
		}
	}

	results = dedupeMatches(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Suggest proposes codes for free text: the whole phrase first, then each
// word longer than three characters at a discount, then the optional context
// string at a deeper discount.
func (s *Service) Suggest(text, context string, system vocabulary.System) []CodeMatch {
	var suggestions []CodeMatch
	suggestions = append(suggestions, s.Search(text, system, 5)...)

	for _, word := range wordRE.FindAllString(strings.ToLower(text), -1) {
		if len(word) < minSuggestWordLen {
			continue
		}
		for _, m := range s.Search(word, system, 2) {
			m.MatchType = MatchWord
			m.Confidence *= wordMatchDiscount
			suggestions = append(suggestions, m)
		}
	}

	if context != "" {
		for _, m := range s.Search(context, system, 3) {
			m.MatchType = MatchContext
			m.Confidence *= contextDiscount
			suggestions = append(suggestions, m)
		}
	}

	suggestions = dedupeMatches(suggestions)
	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	return suggestions
}

// Validate checks that a code exists in the given system. Unknown codes get
// up to three search-based suggestions.
func (s *Service) Validate(code string, system vocabulary.System) ValidationResult {
	obj, ok := s.store.Code(system, code)
	if !ok {
		return ValidationResult{
			IsValid:     false,
			Message:     fmt.Sprintf("Code %s not found in %s", code, system),
			Suggestions: s.Search(code, system, 3),
		}
	}
	return ValidationResult{
		IsValid:     true,
		Code:        obj.Code,
		System:      obj.System,
		Description: obj.Description,
		Category:    obj.Category,
	}
}

// Hierarchy resolves a code's parents and children within its system.
func (s *Service) Hierarchy(code string, system vocabulary.System) (Hierarchy, bool) {
	obj, ok := s.store.Code(system, code)
	if !ok {
		return Hierarchy{}, false
	}

	h := Hierarchy{
		Code:         obj.Code,
		Description:  obj.Description,
		System:       obj.System,
		Category:     obj.Category,
		ParentCodes:  []CodeSummary{},
		ChildCodes:   []CodeSummary{},
		SiblingCodes: []CodeSummary{},
	}
	for _, parent := range obj.ParentCodes {
		if p, ok := s.store.Code(system, parent); ok {
			h.ParentCodes = append(h.ParentCodes, CodeSummary{Code: p.Code, Description: p.Description})
		}
	}
	for _, child := range obj.ChildCodes {
		if c, ok := s.store.Code(system, child); ok {
			h.ChildCodes = append(h.ChildCodes, CodeSummary{Code: c.Code, Description: c.Description})
		}
	}
	return h, true
}

// CrossMap finds candidate equivalents of a code in another system by
// searching the target system for the source description and synonyms. The
// result confidence carries a flat discount since no crosswalk table backs
// the mapping.
func (s *Service) CrossMap(code string, source, target vocabulary.System) []CrossMapping {
	obj, ok := s.store.Code(source, code)
	if !ok {
		return nil
	}

	candidates := s.Search(obj.Description, target, 5)
	for _, syn := range obj.Synonyms {
		candidates = append(candidates, s.Search(syn, target, 3)...)
	}

	seen := make(map[string]bool)
	var mappings []CrossMapping
	for _, m := range candidates {
		if seen[m.Code] {
			continue
		}
		seen[m.Code] = true
		mappings = append(mappings, CrossMapping{
			CodeMatch:         m,
			MappingConfidence: m.Confidence * crossMapDiscount,
			SourceCode:        code,
			SourceSystem:      source,
		})
	}
	return mappings
}

// Billable validates diagnosis codes against ICD-10-CM and procedure codes
// against CPT, promoting the first valid diagnosis to primary.
func (s *Service) Billable(diagnosisCodes, procedureCodes []string) BillableInfo {
	info := BillableInfo{
		SecondaryDiagnoses: []ValidationResult{},
		Procedures:         []ValidationResult{},
		BillingNotes:       []string{},
	}

	var valid []ValidationResult
	for _, code := range diagnosisCodes {
		if v := s.Validate(code, vocabulary.SystemICD10CM); v.IsValid {
			valid = append(valid, v)
		}
	}
	if len(valid) > 0 {
		info.PrimaryDiagnosis = &valid[0]
		info.SecondaryDiagnoses = valid[1:]
	}

	for _, code := range procedureCodes {
		if v := s.Validate(code, vocabulary.SystemCPT); v.IsValid {
			info.Procedures = append(info.Procedures, v)
		}
	}

	if len(valid) == 0 {
		info.BillingNotes = append(info.BillingNotes, "No valid diagnosis codes provided")
	}
	if len(valid) > 1 {
		info.BillingNotes = append(info.BillingNotes, "Multiple diagnoses - verify primary diagnosis")
	}
	return info
}

// CodesByCategory lists the codes in a category, optionally limited to one
// system.
func (s *Service) CodesByCategory(category string, system vocabulary.System) []*vocabulary.MedicalCode {
	return s.store.CodesByCategory(category, system)
}

func newMatch(code *vocabulary.MedicalCode, conf float64, matchType string) CodeMatch {
	return CodeMatch{
		Code:        code.Code,
		System:      code.System,
		Description: code.Description,
		Category:    code.Category,
		Confidence:  conf,
		MatchType:   matchType,
	}
}

// dedupeMatches keeps the best-scoring entry per system:code pair and sorts
// by confidence, tying on system then code for stable output.
func dedupeMatches(matches []CodeMatch) []CodeMatch {
	best := make(map[string]CodeMatch)
	for _, m := range matches {
		key := string(m.System) + ":" + m.Code
		if prev, ok := best[key]; !ok || m.Confidence > prev.Confidence {
			best[key] = m
		}
	}

	out := make([]CodeMatch, 0, len(best))
	for _, m := range best {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		if out[i].System != out[j].System {
			return out[i].System < out[j].System
		}
		return out[i].Code < out[j].Code
	})
	return out
}
