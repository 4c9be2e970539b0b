package forms

import (
	"fmt"
	"strings"

	"github.com/mednlp/mednlp/internal/domain/extract"
)

const lowConfidenceThreshold = 0.7

// Mapper fills form templates from extracted entities.
type Mapper struct {
	registry *Registry
}

func NewMapper(registry *Registry) *Mapper {
	return &Mapper{registry: registry}
}

// Registry exposes the template registry backing this mapper.
func (m *Mapper) Registry() *Registry {
	return m.registry
}

// MapToForm fills the named template from the entities. When custom is
// non-nil it is used instead of a registered template. Each form field takes
// the first entity, in document order, whose lowercased label matches the
// field directly or through an alias.
func (m *Mapper) MapToForm(entities []extract.Entity, formType string, custom *FormTemplate) (MappedForm, error) {
	template, ok := m.registry.Template(formType)
	if custom != nil {
		template = *custom
		ok = true
	}
	if !ok {
		return MappedForm{}, fmt.Errorf("%w: %s", ErrUnknownFormType, formType)
	}

	form := MappedForm{
		FormType:     formType,
		MappedFields: make(map[string]MappedField, len(template.Fields)),
		Validation: Validation{
			IsValid:          true,
			MissingRequired:  []string{},
			FieldWarnings:    []FieldWarning{},
			ConfidenceScores: make(map[string]float64, len(template.Fields)),
		},
	}

	for _, spec := range template.Fields {
		var value *string
		confidence := 0.0

		for i := range entities {
			if !fieldsMatch(strings.ToLower(entities[i].Label), spec.Name) {
				continue
			}
			v := entities[i].Text
			value = &v
			confidence = entities[i].Confidence
			break
		}

		form.MappedFields[spec.Name] = MappedField{
			Value:      value,
			Confidence: confidence,
			Required:   spec.Required,
			Type:       spec.Type,
			AutoFilled: value != nil,
		}

		if spec.Required && value == nil {
			form.Validation.MissingRequired = append(form.Validation.MissingRequired, spec.Name)
			form.Validation.IsValid = false
		}
		if value != nil && confidence < lowConfidenceThreshold {
			form.Validation.FieldWarnings = append(form.Validation.FieldWarnings, FieldWarning{
				Field:      spec.Name,
				Message:    "Low confidence extraction",
				Confidence: confidence,
			})
		}
		form.Validation.ConfidenceScores[spec.Name] = confidence

		if value != nil {
			form.FieldsFilled++
		}
	}

	form.TotalFields = len(template.Fields)
	if form.TotalFields > 0 {
		form.CompletionRate = float64(form.FieldsFilled) / float64(form.TotalFields)
	}
	return form, nil
}
