package coding

import "github.com/mednlp/mednlp/internal/domain/vocabulary"

// Match types, ordered by how directly the query hit the code.
const (
	MatchExact   = "exact"
	MatchPartial = "partial"
	MatchWord    = "word_match"
	MatchContext = "context_match"
)

// CodeMatch is one search or suggestion hit against the code index.
type CodeMatch struct {
	Code        string            `json:"code"`
	System      vocabulary.System `json:"system"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Confidence  float64           `json:"confidence"`
	MatchType   string            `json:"match_type"`
}

// CrossMapping is a candidate equivalent of a code in another system.
// MappingConfidence is discounted from the search confidence since no
// official crosswalk backs it.
type CrossMapping struct {
	CodeMatch
	MappingConfidence float64           `json:"mapping_confidence"`
	SourceCode        string            `json:"source_code"`
	SourceSystem      vocabulary.System `json:"source_system"`
}

// ValidationResult reports whether a code exists in a system. Invalid codes
// come back with up to three close suggestions.
type ValidationResult struct {
	IsValid     bool              `json:"is_valid"`
	Code        string            `json:"code,omitempty"`
	System      vocabulary.System `json:"system,omitempty"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Message     string            `json:"message,omitempty"`
	Suggestions []CodeMatch       `json:"suggestions,omitempty"`
}

// CodeSummary is a code with its description, used in hierarchy listings.
type CodeSummary struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Hierarchy holds the resolved parent and child codes of a code within its
// system. Siblings are kept in the shape for future use; nothing fills them
// from the reference data yet.
type Hierarchy struct {
	Code         string            `json:"code"`
	Description  string            `json:"description"`
	System       vocabulary.System `json:"system"`
	Category     string            `json:"category"`
	ParentCodes  []CodeSummary     `json:"parent_codes"`
	ChildCodes   []CodeSummary     `json:"child_codes"`
	SiblingCodes []CodeSummary     `json:"sibling_codes"`
}

// BillableInfo splits validated diagnosis and procedure codes into a billing
// view: first valid diagnosis is primary, the rest secondary.
type BillableInfo struct {
	PrimaryDiagnosis   *ValidationResult  `json:"primary_diagnosis"`
	SecondaryDiagnoses []ValidationResult `json:"secondary_diagnoses"`
	Procedures         []ValidationResult `json:"procedures"`
	BillingNotes       []string           `json:"billing_notes"`
}
