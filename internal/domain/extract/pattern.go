package extract

import (
	"regexp"
	"strings"
)

// rulePattern is one compiled alternative for a rule. fixed > 0 pins the
// confidence; otherwise it is scored from the match context.
type rulePattern struct {
	re    *regexp.Regexp
	raw   string
	fixed float64
}

// Rule extracts one entity label from document text. A rule may carry several
// alternative patterns; only the highest-confidence match is kept.
type Rule struct {
	Label    string
	patterns []rulePattern
}

// NewRule compiles the given expressions, case-insensitive and multi-line.
func NewRule(label string, fixed float64, exprs ...string) Rule {
	r := Rule{Label: label}
	for _, expr := range exprs {
		r.patterns = append(r.patterns, rulePattern{
			re:    regexp.MustCompile(`(?im)` + expr),
			raw:   expr,
			fixed: fixed,
		})
	}
	return r
}

func (r Rule) withFixed(fixed float64, exprs ...string) Rule {
	extra := NewRule(r.Label, fixed, exprs...)
	r.patterns = append(r.patterns, extra.patterns...)
	return r
}

// DefaultRules returns the built-in rule set covering demographic fields,
// identifiers, narrative fields and vital signs.
func DefaultRules() []Rule {
	return []Rule{
		NewRule(LabelPatientName, 0,
			`Patient:?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`,
			`Name:?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`,
			`([A-Z][a-z]+\s+[A-Z][a-z]+),?\s+(?:age|DOB|born)`,
		),
		NewRule(LabelDateOfBirth, 0,
			`DOB:?\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
			`Date of Birth:?\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
			`Born:?\s+(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`,
		),
		NewRule(LabelAge, 0,
			`age:?\s+(\d{1,3})`,
			`(\d{1,3})\s*(?:year|yr|y)[\s-]*old`,
			`(\d{1,3})\s*yo`,
		),
		NewRule(LabelMRN, 0,
			`MRN:?\s+(\d+)`,
			`Medical Record:?\s+(\d+)`,
			`Record #:?\s+(\d+)`,
		),
		NewRule(LabelInsuranceID, 0,
			`Insurance:?\s+([A-Z0-9]+)`,
			`Policy:?\s+([A-Z0-9]+)`,
			`Member ID:?\s+([A-Z0-9]+)`,
		),
		NewRule(LabelDiagnosis, 0,
			`Primary Diagnosis:?\s+([^\n\r]+)`,
			`Diagnosis:?\s+([^\n\r]+)`,
			`Impression:?\s+([^\n\r]+)`,
		),
		NewRule(LabelChiefComplaint, 0,
			`Chief Complaint:?\s+([^\n\r]+)`,
			`CC:?\s+([^\n\r]+)`,
			`Presenting complaint:?\s+([^\n\r]+)`,
		),
		NewRule(LabelMedications, 0,
			`Medications?:?\s*\n((?:[^\n]+\n?)+?)(?:\n\s*\n|\n[A-Z]|\z)`,
			`Current Meds:?\s*\n((?:[^\n]+\n?)+?)(?:\n\s*\n|\n[A-Z]|\z)`,
			`Rx:?\s*\n((?:[^\n]+\n?)+?)(?:\n\s*\n|\n[A-Z]|\z)`,
		),
		NewRule(LabelAllergies, 0,
			`Allergies:?\s+([^\n\r]+)`,
			`Drug Allergies:?\s+([^\n\r]+)`,
			`NKDA|No known drug allergies`,
		),
		NewRule(LabelBloodPressure, 0,
			`BP:?\s+(\d{2,3}/\d{2,3})`,
			`Blood Pressure:?\s+(\d{2,3}/\d{2,3})`,
			`(\d{2,3}/\d{2,3})\s*mmHg`,
		).withFixed(0.95,
			`\b(\d{2,3}/\d{2,3})\b`,
		),
		NewRule(LabelHeartRate, 0,
			`HR:?\s+(\d{2,3})`,
			`Heart Rate:?\s+(\d{2,3})`,
			`Pulse:?\s+(\d{2,3})`,
		),
		NewRule(LabelTemperature, 0,
			`Temp:?\s+(\d{2,3}(?:\.\d)?)\s*°?[FC]`,
			`Temperature:?\s+(\d{2,3}(?:\.\d)?)\s*°?[FC]`,
		).withFixed(0.9,
			`\b(\d{2,3}(?:\.\d)?)\s*°[FC]\b`,
		),
		NewRule(LabelWeight, 0,
			`Weight:?\s+(\d{2,3}(?:\.\d)?)\s*(?:lbs?|kg)`,
			`Wt:?\s+(\d{2,3}(?:\.\d)?)\s*(?:lbs?|kg)`,
			`(\d{2,3}(?:\.\d)?)\s*(?:lbs?|kg)`,
		),
		NewRule(LabelHeight, 0,
			`Height:?\s+(\d+'?\s*\d*"?|\d+\s*(?:cm|in))`,
			`Ht:?\s+(\d+'?\s*\d*"?|\d+\s*(?:cm|in))`,
			`(\d+'?\s*\d*"?)\s*tall`,
		),
		NewRule(LabelDosage, 0.9,
			`\b(\d+(?:\.\d+)?\s*(?:mg|ml|mcg|g|units?))\b`,
		),
	}
}

// PatternExtractor runs the rule set over a document. Confidence-scored
// matches are reduced to the single best per label.
type PatternExtractor struct {
	rules []Rule
}

// NewPatternExtractor creates an extractor. With no rules the default set is
// used.
func NewPatternExtractor(rules ...Rule) *PatternExtractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &PatternExtractor{rules: rules}
}

// Extract returns at most one entity per rule label, the highest-confidence
// match among the rule's patterns.
func (p *PatternExtractor) Extract(text string) []Entity {
	var out []Entity
	for _, rule := range p.rules {
		var best *Entity
		for _, pat := range rule.patterns {
			for _, loc := range pat.re.FindAllStringSubmatchIndex(text, -1) {
				start, end := loc[0], loc[1]
				value := text[start:end]
				if pat.re.NumSubexp() > 0 && loc[2] >= 0 {
					start, end = loc[2], loc[3]
					value = text[start:end]
				}

				value = cleanFieldValue(rule.Label, value)
				if value == "" {
					continue
				}

				conf := pat.fixed
				if conf == 0 {
					conf = scoreMatch(pat.raw, text[loc[0]:loc[1]], loc[0], len(text))
				}
				if best == nil || conf > best.Confidence {
					best = &Entity{
						Text:       value,
						Label:      rule.Label,
						Start:      start,
						End:        end,
						Confidence: conf,
					}
				}
			}
		}
		if best != nil {
			out = append(out, *best)
		}
	}
	return out
}

// scoreMatch rates a match from its pattern shape and position. Labelled
// patterns score higher, very short matches lower, matches in the first fifth
// of the document slightly higher.
func scoreMatch(raw, matchText string, start, textLen int) float64 {
	conf := 0.8
	if strings.Contains(raw, ":") {
		conf += 0.1
	}
	if strings.Contains(raw, "Patient:") || strings.Contains(raw, "Name:") {
		conf += 0.1
	}
	if len(matchText) < 3 {
		conf -= 0.2
	}
	if float64(start) < float64(textLen)*0.2 {
		conf += 0.05
	}
	if conf > 1.0 {
		conf = 1.0
	}
	if conf < 0.1 {
		conf = 0.1
	}
	return conf
}

var (
	honorificRE     = regexp.MustCompile(`(?i)\b(?:Mr|Mrs|Ms|Dr|MD|RN|Jr|Sr)\.?\b`)
	dateSepRE       = regexp.MustCompile(`[/-]`)
	digitsRE        = regexp.MustCompile(`\d+`)
	fieldTrailingPunctRE = regexp.MustCompile(`[.,:;]+$`)
)

func cleanFieldValue(label, value string) string {
	value = strings.TrimSpace(value)

	switch label {
	case LabelPatientName:
		value = honorificRE.ReplaceAllString(value, "")
		value = strings.Join(strings.Fields(value), " ")
	case LabelDateOfBirth:
		value = dateSepRE.ReplaceAllString(value, "/")
	case LabelAge:
		if m := digitsRE.FindString(value); m != "" {
			value = m
		}
	case LabelMedications, LabelAllergies:
		var lines []string
		for _, line := range strings.Split(value, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		value = strings.Join(lines, "\n")
	case LabelDiagnosis, LabelChiefComplaint:
		value = fieldTrailingPunctRE.ReplaceAllString(value, "")
	}

	return strings.TrimSpace(value)
}
