package vocabulary

// System identifies a medical coding system.
type System string

const (
	SystemICD10CM  System = "ICD-10-CM"
	SystemICD10PCS System = "ICD-10-PCS"
	SystemCPT      System = "CPT"
	SystemHCPCS    System = "HCPCS"
	SystemSNOMED   System = "SNOMED-CT"
	SystemLOINC    System = "LOINC"
	SystemRxNorm   System = "RxNorm"
	SystemNDC      System = "NDC"
)

// Kind groups terms into the broad classes used as entity labels.
const (
	KindCondition  = "conditions"
	KindMedication = "medications"
	KindBodyPart   = "body_parts"
)

// MedicalTerm is a canonical vocabulary entry with its surface variants.
type MedicalTerm struct {
	CanonicalName string    `json:"canonical_name"`
	Kind          string    `json:"kind"`
	Category      string    `json:"category"`
	Synonyms      []string  `json:"synonyms,omitempty"`
	Abbreviations []string  `json:"abbreviations,omitempty"`
	Codes         []CodeRef `json:"codes,omitempty"`
}

// CodeRef ties a term to a code in a specific system.
type CodeRef struct {
	Code        string `json:"code"`
	System      System `json:"system"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// MedicalCode is a full code entry in a coding system.
type MedicalCode struct {
	Code        string   `json:"code"`
	System      System   `json:"system"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Synonyms    []string `json:"synonyms,omitempty"`
	ParentCodes []string `json:"parent_codes,omitempty"`
	ChildCodes  []string `json:"child_codes,omitempty"`
}

// Key returns the system-qualified identity of the code.
func (c *MedicalCode) Key() string {
	return string(c.System) + ":" + c.Code
}

// Normalization match methods, in decreasing order of certainty.
const (
	MatchDirect       = "direct"
	MatchSynonym      = "synonym"
	MatchAbbreviation = "abbreviation"
	MatchFuzzy        = "fuzzy"
)

// Normalization is the result of resolving free text to a canonical term.
type Normalization struct {
	Input      string  `json:"input"`
	Normalized string  `json:"normalized"`
	Kind       string  `json:"kind"`
	Category   string  `json:"category"`
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
}

// SurfaceForm is one matchable text form of a term, used by substring matchers.
type SurfaceForm struct {
	Text      string
	Canonical string
	Kind      string
	Category  string
	Synonym   bool
}

// TermSuggestion is an auto-completion candidate for a partial term.
type TermSuggestion struct {
	Term       string  `json:"term"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Type       string  `json:"type"`
}

// Stats summarizes the frozen vocabulary content.
type Stats struct {
	Terms         int            `json:"terms"`
	Synonyms      int            `json:"synonyms"`
	Abbreviations int            `json:"abbreviations"`
	Codes         int            `json:"codes"`
	SearchTerms   int            `json:"search_terms"`
	Categories    map[string]int `json:"categories"`
	CodesBySystem map[System]int `json:"codes_by_system"`
}
