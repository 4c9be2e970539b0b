package extract

import (
	"sort"

	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

// Resolver merges entities from the different extractors into one
// non-overlapping, confidence-boosted list.
type Resolver struct {
	store *vocabulary.Store
}

func NewResolver(store *vocabulary.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve sorts entities by position, drops the lower-confidence side of
// every overlap, then boosts entities whose text normalizes to a known term.
func (r *Resolver) Resolve(entities []Entity) []Entity {
	if len(entities) == 0 {
		return nil
	}

	sorted := make([]Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	resolved := make([]Entity, 0, len(sorted))
	resolved = append(resolved, sorted[0])
	for _, e := range sorted[1:] {
		last := &resolved[len(resolved)-1]
		if e.Overlaps(last) {
			if e.Confidence > last.Confidence {
				*last = e
			}
			continue
		}
		resolved = append(resolved, e)
	}

	for i := range resolved {
		r.enrich(&resolved[i])
	}
	return resolved
}

// enrich raises confidence for entities the vocabulary recognizes exactly or
// by synonym, and attaches the term's code references.
func (r *Resolver) enrich(e *Entity) {
	norm, ok := r.store.NormalizeTerm(e.Text)
	if !ok {
		return
	}
	if norm.Method != vocabulary.MatchDirect && norm.Method != vocabulary.MatchSynonym {
		return
	}

	e.NormalizedForm = norm.Normalized
	e.Confidence *= 1.1
	if e.Confidence > 1.0 {
		e.Confidence = 1.0
	}
	if term, ok := r.store.Term(norm.Normalized); ok && len(e.Codes) == 0 {
		e.Codes = term.Codes
	}
}
