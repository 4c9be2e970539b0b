package pipeline

import (
	"sort"
	"strings"
)

// Classification labels a document with a type and a specialty. Scores per
// candidate are kept for inspection.
type Classification struct {
	DocumentType    string             `json:"document_type"`
	Specialty       string             `json:"specialty"`
	Confidence      float64            `json:"confidence"`
	Method          string             `json:"method"`
	TypeScores      map[string]float64 `json:"type_scores,omitempty"`
	SpecialtyScores map[string]float64 `json:"specialty_scores,omitempty"`
}

var typeKeywords = map[string][]string{
	"discharge_summary":   {"discharge", "summary", "hospital course", "disposition"},
	"progress_note":       {"progress", "soap", "assessment", "plan"},
	"consultation_report": {"consultation", "consult", "referred", "opinion"},
	"lab_report":          {"laboratory", "lab results", "blood work", "urinalysis"},
	"radiology_report":    {"x-ray", "ct scan", "mri", "ultrasound", "radiology"},
	"prescription":        {"prescription", "medication", "rx", "dispense"},
	"insurance_form":      {"insurance", "claim", "policy", "coverage"},
	"consent_form":        {"consent", "authorization", "permission", "agree"},
}

var specialtyKeywords = map[string][]string{
	"cardiology":        {"heart", "cardiac", "cardio", "chest pain", "hypertension"},
	"neurology":         {"brain", "neurological", "headache", "seizure", "stroke"},
	"orthopedics":       {"bone", "fracture", "joint", "orthopedic", "musculoskeletal"},
	"pediatrics":        {"pediatric", "child", "infant", "adolescent"},
	"emergency":         {"emergency", "trauma", "urgent", "acute"},
	"internal_medicine": {"internal medicine", "primary care", "general"},
	"surgery":           {"surgical", "operation", "procedure", "incision"},
	"radiology":         {"imaging", "scan", "x-ray", "radiology"},
}

// Classifier assigns document type and specialty from keyword occurrence.
// Each candidate scores the fraction of its keywords present in the text;
// the overall confidence averages the two winning scores.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func (cl *Classifier) Classify(text string) Classification {
	lower := strings.ToLower(text)

	typeScores := scoreKeywords(lower, typeKeywords)
	specialtyScores := scoreKeywords(lower, specialtyKeywords)

	docType, typeScore := bestScore(typeScores, "unknown")
	specialty, specialtyScore := bestScore(specialtyScores, "general")

	return Classification{
		DocumentType:    docType,
		Specialty:       specialty,
		Confidence:      (typeScore + specialtyScore) / 2,
		Method:          "rule_based",
		TypeScores:      typeScores,
		SpecialtyScores: specialtyScores,
	}
}

func scoreKeywords(lower string, candidates map[string][]string) map[string]float64 {
	scores := make(map[string]float64)
	for name, keywords := range candidates {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > 0 {
			scores[name] = float64(hits) / float64(len(keywords))
		}
	}
	return scores
}

// bestScore picks the highest-scoring candidate, breaking ties by name so
// the result does not depend on map order.
func bestScore(scores map[string]float64, fallback string) (string, float64) {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestScore := fallback, 0.0
	for _, name := range names {
		if scores[name] > bestScore {
			best, bestScore = name, scores[name]
		}
	}
	return best, bestScore
}
