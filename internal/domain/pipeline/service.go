package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mednlp/mednlp/internal/domain/coding"
	"github.com/mednlp/mednlp/internal/domain/extract"
	"github.com/mednlp/mednlp/internal/domain/forms"
	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

const lowConfidenceThreshold = 0.7

// highRiskConditions are flagged in the insights whenever an entity mentions
// one of them.
var highRiskConditions = []string{"diabetes", "hypertension", "heart disease", "stroke"}

// Service orchestrates the document pipeline: abbreviation expansion,
// entity extraction, overlap resolution, code mapping, insights and form
// auto-fill. The optional model adapter contributes statistical entities;
// its failures degrade to rule-based output instead of failing the request.
type Service struct {
	store      *vocabulary.Store
	expander   *extract.Expander
	patterns   *extract.PatternExtractor
	terms      *extract.TermMatcher
	resolver   *extract.Resolver
	coder      *coding.Service
	mapper     *forms.Mapper
	classifier *Classifier
	adapter    extract.ModelAdapter
	logger     zerolog.Logger
}

// NewService wires the pipeline. adapter may be nil.
func NewService(store *vocabulary.Store, coder *coding.Service, mapper *forms.Mapper,
	adapter extract.ModelAdapter, logger zerolog.Logger) *Service {
	return &Service{
		store:      store,
		expander:   extract.NewExpander(store),
		patterns:   extract.NewPatternExtractor(),
		terms:      extract.NewTermMatcher(store),
		resolver:   extract.NewResolver(store),
		coder:      coder,
		mapper:     mapper,
		classifier: NewClassifier(),
		adapter:    adapter,
		logger:     logger,
	}
}

// Process runs the full pipeline over one document.
func (s *Service) Process(ctx context.Context, text, documentType string) Result {
	start := time.Now()

	normalized := s.expander.Expand(text)

	entities := s.patterns.Extract(normalized)
	entities = append(entities, s.terms.Extract(normalized)...)

	if s.adapter != nil {
		modelEntities, err := s.adapter.Extract(ctx, normalized)
		if err != nil {
			s.logger.Warn().Err(err).Msg("model adapter extraction failed, continuing rule-based")
		} else {
			entities = append(entities, modelEntities...)
		}
	}

	resolved := s.resolver.Resolve(entities)
	mappings := s.mapCodes(resolved)

	return Result{
		ID: uuid.New(),
		Analysis: Analysis{
			TextLength:     len(text),
			ProcessingTime: time.Since(start).Seconds(),
			DocumentType:   documentType,
			Confidence:     averageConfidence(resolved),
			NormalizedText: normalized,
		},
		Entities:     resolved,
		CodeMappings: mappings,
		Insights:     s.buildInsights(resolved, mappings),
		Suggestions:  s.buildSuggestions(resolved, text),
	}
}

// AutoFill processes the document and maps the resolved entities onto the
// requested form template.
func (s *Service) AutoFill(ctx context.Context, text, formType string, custom *forms.FormTemplate) (AutoFillResult, error) {
	result := s.Process(ctx, text, "")

	form, err := s.mapper.MapToForm(result.Entities, formType, custom)
	if err != nil {
		return AutoFillResult{}, err
	}

	return AutoFillResult{
		ID:       result.ID,
		Form:     form,
		Entities: result.Entities,
		Analysis: result.Analysis,
	}, nil
}

// Classify labels a document, preferring the model adapter and falling back
// to keyword rules when it is absent or unavailable.
func (s *Service) Classify(ctx context.Context, text string) Classification {
	if s.adapter != nil {
		cls, err := s.adapter.Classify(ctx, text)
		if err != nil {
			s.logger.Warn().Err(err).Msg("model adapter classification failed, falling back to rules")
		} else {
			return Classification{
				DocumentType: cls.DocumentType,
				Specialty:    cls.Specialty,
				Confidence:   cls.Confidence,
				Method:       "model",
			}
		}
	}
	return s.classifier.Classify(text)
}

// mapCodes suggests codes per entity based on its label family: ICD-10-CM
// for diagnoses, CPT for procedures, any system for medications.
func (s *Service) mapCodes(entities []extract.Entity) []CodeMapping {
	var mappings []CodeMapping

	for i := range entities {
		e := &entities[i]
		text := e.Normalized()

		switch e.Label {
		case "CONDITIONS", "DIAGNOSIS", "SYMPTOM":
			suggestions := s.coder.Suggest(text, "diagnosis", "")
			for _, sg := range capMatches(suggestions, 3) {
				if sg.System != vocabulary.SystemICD10CM {
					continue
				}
				mappings = append(mappings, newMapping(e, sg, "diagnosis"))
			}
		case "PROCEDURE", "TREATMENT":
			suggestions := s.coder.Suggest(text, "procedure", "")
			for _, sg := range capMatches(suggestions, 2) {
				if sg.System != vocabulary.SystemCPT {
					continue
				}
				mappings = append(mappings, newMapping(e, sg, "procedure"))
			}
		case "MEDICATIONS", "MEDICATION":
			suggestions := s.coder.Suggest(text, "medication", "")
			for _, sg := range capMatches(suggestions, 2) {
				mappings = append(mappings, newMapping(e, sg, "medication"))
			}
		}
	}
	return mappings
}

func newMapping(e *extract.Entity, m coding.CodeMatch, mappingType string) CodeMapping {
	return CodeMapping{
		EntityText:  e.Text,
		EntityLabel: e.Label,
		Code:        m.Code,
		System:      m.System,
		Description: m.Description,
		Confidence:  m.Confidence * e.Confidence,
		MappingType: mappingType,
	}
}

func capMatches(matches []coding.CodeMatch, n int) []coding.CodeMatch {
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}

func (s *Service) buildInsights(entities []extract.Entity, mappings []CodeMapping) Insights {
	insights := Insights{
		EntitySummary:   make(map[string]int),
		CodeSummary:     make(map[vocabulary.System]int),
		ClinicalNotes:   []string{},
		RiskFactors:     []RiskFactor{},
		Recommendations: []string{},
	}

	for _, e := range entities {
		insights.EntitySummary[e.Label]++
	}
	for _, m := range mappings {
		insights.CodeSummary[m.System]++
	}

	diagnostic := insights.EntitySummary["CONDITIONS"] + insights.EntitySummary["DIAGNOSIS"]
	if diagnostic > 0 {
		insights.ClinicalNotes = append(insights.ClinicalNotes,
			fmt.Sprintf("Document contains %d diagnostic entities", diagnostic))
	}
	if n := insights.EntitySummary["MEDICATIONS"]; n > 0 {
		insights.ClinicalNotes = append(insights.ClinicalNotes,
			fmt.Sprintf("Document mentions %d medications", n))
	}

	for _, e := range entities {
		lower := strings.ToLower(e.Text)
		for _, condition := range highRiskConditions {
			if strings.Contains(lower, condition) {
				insights.RiskFactors = append(insights.RiskFactors, RiskFactor{
					Condition:      condition,
					Confidence:     e.Confidence,
					Recommendation: fmt.Sprintf("Monitor %s closely", condition),
				})
			}
		}
	}

	if len(mappings) > 0 {
		insights.Recommendations = append(insights.Recommendations,
			"Review suggested medical codes for accuracy")
	}
	if len(entities) > 10 {
		insights.Recommendations = append(insights.Recommendations,
			"Complex case - consider specialist consultation")
	}
	return insights
}

func (s *Service) buildSuggestions(entities []extract.Entity, text string) []Suggestion {
	suggestions := []Suggestion{}

	hasName, hasDiagnosis, hasAge := false, false, false
	for _, e := range entities {
		switch e.Label {
		case extract.LabelPatientName:
			hasName = true
		case "CONDITIONS", "DIAGNOSIS":
			hasDiagnosis = true
		case extract.LabelAge:
			hasAge = true
		}
	}

	if !hasName {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionMissingInfo,
			Message:  "Patient name not clearly identified",
			Priority: PriorityHigh,
		})
	}
	if !hasDiagnosis {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionMissingInfo,
			Message:  "No clear diagnosis found",
			Priority: PriorityHigh,
		})
	}
	if !hasAge {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionMissingInfo,
			Message:  "Patient age not specified",
			Priority: PriorityMedium,
		})
	}

	var lowConfidence []string
	for _, e := range entities {
		if e.Confidence < lowConfidenceThreshold {
			lowConfidence = append(lowConfidence, e.Text)
		}
	}
	if len(lowConfidence) > 0 {
		sample := lowConfidence
		if len(sample) > 3 {
			sample = sample[:3]
		}
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionLowConfidence,
			Message:  fmt.Sprintf("%d entities have low confidence scores", len(lowConfidence)),
			Priority: PriorityMedium,
			Entities: sample,
		})
	}

	if abbrevs := s.expander.FindAbbreviations(text); len(abbrevs) > 0 {
		if len(abbrevs) > 5 {
			abbrevs = abbrevs[:5]
		}
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionAbbreviations,
			Message:  fmt.Sprintf("Consider expanding abbreviations: %s", strings.Join(abbrevs, ", ")),
			Priority: PriorityLow,
		})
	}
	return suggestions
}

func averageConfidence(entities []extract.Entity) float64 {
	if len(entities) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range entities {
		total += e.Confidence
	}
	return total / float64(len(entities))
}
