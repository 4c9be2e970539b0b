package pipeline

import (
	"github.com/google/uuid"

	"github.com/mednlp/mednlp/internal/domain/extract"
	"github.com/mednlp/mednlp/internal/domain/forms"
	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

// Analysis carries document-level metadata for one processing run.
type Analysis struct {
	TextLength     int     `json:"text_length"`
	ProcessingTime float64 `json:"processing_time"`
	DocumentType   string  `json:"document_type,omitempty"`
	Confidence     float64 `json:"confidence"`
	NormalizedText string  `json:"normalized_text"`
}

// CodeMapping links an extracted entity to a suggested billing or diagnosis
// code. Confidence is the suggestion score weighted by the entity score.
type CodeMapping struct {
	EntityText  string            `json:"entity_text"`
	EntityLabel string            `json:"entity_label"`
	Code        string            `json:"code"`
	System      vocabulary.System `json:"system"`
	Description string            `json:"description"`
	Confidence  float64           `json:"confidence"`
	MappingType string            `json:"mapping_type"`
}

// RiskFactor is a high-risk condition mentioned in the document.
type RiskFactor struct {
	Condition      string  `json:"condition"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation"`
}

// Insights summarizes what was found in a document.
type Insights struct {
	EntitySummary   map[string]int            `json:"entity_summary"`
	CodeSummary     map[vocabulary.System]int `json:"code_summary"`
	ClinicalNotes   []string                  `json:"clinical_notes"`
	RiskFactors     []RiskFactor              `json:"risk_factors"`
	Recommendations []string                  `json:"recommendations"`
}

// Suggestion priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Suggestion types.
const (
	SuggestionMissingInfo   = "missing_info"
	SuggestionLowConfidence = "low_confidence"
	SuggestionAbbreviations = "abbreviations"
)

// Suggestion points at documentation gaps or quality issues.
type Suggestion struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Priority string   `json:"priority"`
	Entities []string `json:"entities,omitempty"`
}

// Result is the full output of processing one document.
type Result struct {
	ID           uuid.UUID        `json:"id"`
	Analysis     Analysis         `json:"document_analysis"`
	Entities     []extract.Entity `json:"entities"`
	CodeMappings []CodeMapping    `json:"medical_codes"`
	Insights     Insights         `json:"insights"`
	Suggestions  []Suggestion     `json:"suggestions"`
}

// AutoFillResult pairs a processing result with the filled form.
type AutoFillResult struct {
	ID       uuid.UUID        `json:"id"`
	Form     forms.MappedForm `json:"form"`
	Entities []extract.Entity `json:"entities"`
	Analysis Analysis         `json:"document_analysis"`
}
