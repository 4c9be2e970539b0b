package forms

import (
	"sort"
	"sync"
)

// Registry holds form templates by name. Built-in templates are loaded at
// construction; custom templates may be registered at runtime.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]FormTemplate
}

// NewRegistry creates a registry pre-loaded with the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]FormTemplate)}
	for _, t := range builtinTemplates() {
		r.templates[t.Name] = t
	}
	return r
}

// Template returns the template with the given name.
func (r *Registry) Template(name string) (FormTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// Register adds or replaces a template.
func (r *Registry) Register(t FormTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name] = t
}

// Names lists the registered template names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinTemplates() []FormTemplate {
	return []FormTemplate{
		{
			Name: "patient_intake",
			Fields: []FieldSpec{
				{Name: "patient_name", Required: true, Type: FieldText},
				{Name: "date_of_birth", Required: true, Type: FieldDate},
				{Name: "age", Required: false, Type: FieldNumber},
				{Name: "insurance_id", Required: true, Type: FieldText},
				{Name: "chief_complaint", Required: true, Type: FieldTextarea},
				{Name: "medications", Required: false, Type: FieldTextarea},
				{Name: "allergies", Required: false, Type: FieldText},
			},
		},
		{
			Name: "discharge_summary",
			Fields: []FieldSpec{
				{Name: "patient_name", Required: true, Type: FieldText},
				{Name: "medical_record_number", Required: true, Type: FieldText},
				{Name: "primary_diagnosis", Required: true, Type: FieldText},
				{Name: "medications", Required: true, Type: FieldTextarea},
				{Name: "discharge_instructions", Required: true, Type: FieldTextarea},
			},
		},
		{
			Name: "insurance_claim",
			Fields: []FieldSpec{
				{Name: "patient_name", Required: true, Type: FieldText},
				{Name: "date_of_birth", Required: true, Type: FieldDate},
				{Name: "insurance_id", Required: true, Type: FieldText},
				{Name: "primary_diagnosis", Required: true, Type: FieldText},
				{Name: "procedure_codes", Required: false, Type: FieldText},
				{Name: "provider_name", Required: true, Type: FieldText},
			},
		},
	}
}

// fieldAliases maps an extracted field name to the form field names it may
// fill.
var fieldAliases = map[string][]string{
	"patient_name":          {"patient_name", "name", "full_name"},
	"date_of_birth":         {"date_of_birth", "dob", "birth_date"},
	"age":                   {"age", "patient_age"},
	"medical_record_number": {"mrn", "medical_record_number", "record_number"},
	"insurance_id":          {"insurance_id", "policy_number", "member_id"},
	"primary_diagnosis":     {"primary_diagnosis", "diagnosis", "main_diagnosis"},
	"chief_complaint":       {"chief_complaint", "complaint", "presenting_problem"},
	"medications":           {"medications", "current_medications", "meds"},
	"allergies":             {"allergies", "drug_allergies", "known_allergies"},
}

// fieldsMatch reports whether an extracted field can fill a form field,
// either directly or through an alias.
func fieldsMatch(extracted, formField string) bool {
	if extracted == formField {
		return true
	}
	for _, alias := range fieldAliases[extracted] {
		if alias == formField {
			return true
		}
	}
	return false
}
