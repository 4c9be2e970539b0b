package extract

import "github.com/mednlp/mednlp/internal/domain/vocabulary"

// Entity labels produced by the extractors. Pattern labels mirror the form
// field names they fill; terminology labels come from the term's kind.
const (
	LabelPatientName     = "PATIENT_NAME"
	LabelDateOfBirth     = "DATE_OF_BIRTH"
	LabelAge             = "AGE"
	LabelMRN             = "MEDICAL_RECORD_NUMBER"
	LabelInsuranceID     = "INSURANCE_ID"
	LabelDiagnosis       = "PRIMARY_DIAGNOSIS"
	LabelChiefComplaint  = "CHIEF_COMPLAINT"
	LabelMedications     = "MEDICATIONS"
	LabelAllergies       = "ALLERGIES"
	LabelBloodPressure   = "BLOOD_PRESSURE"
	LabelHeartRate       = "HEART_RATE"
	LabelTemperature     = "TEMPERATURE"
	LabelWeight          = "WEIGHT"
	LabelHeight          = "HEIGHT"
	LabelDosage          = "DOSAGE"
	LabelConditions      = "CONDITIONS"
	LabelBodyParts       = "BODY_PARTS"
)

// Entity is a span of medical meaning extracted from a document. Start and
// End are byte offsets into the analyzed text, half-open.
type Entity struct {
	Text           string               `json:"text"`
	Label          string               `json:"label"`
	Start          int                  `json:"start"`
	End            int                  `json:"end"`
	Confidence     float64              `json:"confidence"`
	NormalizedForm string               `json:"normalized_form,omitempty"`
	Codes          []vocabulary.CodeRef `json:"medical_codes,omitempty"`
}

// Normalized returns the canonical form when one is known, the raw text
// otherwise.
func (e *Entity) Normalized() string {
	if e.NormalizedForm != "" {
		return e.NormalizedForm
	}
	return e.Text
}

// Overlaps reports whether two spans intersect.
func (e *Entity) Overlaps(other *Entity) bool {
	return e.Start < other.End && e.End > other.Start
}
