package forms

import "errors"

// ErrUnknownFormType is returned when a requested form template does not
// exist in the registry.
var ErrUnknownFormType = errors.New("unknown form type")

// Field input types used by form renderers.
const (
	FieldText     = "text"
	FieldTextarea = "textarea"
	FieldDate     = "date"
	FieldNumber   = "number"
)

// FieldSpec describes one field of a form template.
type FieldSpec struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
}

// FormTemplate is an ordered list of fields under a template name.
type FormTemplate struct {
	Name   string      `json:"name"`
	Fields []FieldSpec `json:"fields"`
}

// MappedField is one form field after auto-fill. Value is nil when no
// extracted entity matched the field.
type MappedField struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
	Required   bool    `json:"required"`
	Type       string  `json:"type"`
	AutoFilled bool    `json:"auto_filled"`
}

// FieldWarning flags a filled field whose extraction confidence is low.
type FieldWarning struct {
	Field      string  `json:"field"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// Validation summarizes required-field coverage and extraction quality for a
// mapped form.
type Validation struct {
	IsValid          bool               `json:"is_valid"`
	MissingRequired  []string           `json:"missing_required"`
	FieldWarnings    []FieldWarning     `json:"field_warnings"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
}

// MappedForm is the auto-fill result for one form template.
type MappedForm struct {
	FormType       string                 `json:"form_type"`
	MappedFields   map[string]MappedField `json:"mapped_fields"`
	Validation     Validation             `json:"validation"`
	CompletionRate float64                `json:"completion_rate"`
	FieldsFilled   int                    `json:"fields_filled"`
	TotalFields    int                    `json:"total_fields"`
}
