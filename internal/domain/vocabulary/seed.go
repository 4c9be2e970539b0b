package vocabulary

import "context"

// Seed returns the built-in vocabulary source. It is always loaded first so
// file and database sources can extend or override it.
func Seed() Source { return seedSource{} }

type seedSource struct{}

func (seedSource) Name() string { return "builtin" }

func (seedSource) Load(_ context.Context, b *Builder) error {
	for _, t := range seedTerms {
		if err := b.AddTerm(t); err != nil {
			return err
		}
	}
	for _, c := range seedCodes {
		if err := b.AddCode(c); err != nil {
			return err
		}
	}
	for abbrev, expansion := range seedAbbreviations {
		if err := b.AddAbbreviation(abbrev, expansion); err != nil {
			return err
		}
	}
	return nil
}

var seedTerms = []MedicalTerm{
	// Conditions
	{
		CanonicalName: "hypertension",
		Kind:          KindCondition,
		Category:      "cardiovascular",
		Synonyms:      []string{"high blood pressure", "elevated blood pressure"},
		Abbreviations: []string{"htn", "hbp"},
		Codes:         []CodeRef{{Code: "I10", System: SystemICD10CM, Description: "Essential hypertension", Category: "cardiovascular"}},
	},
	{
		CanonicalName: "diabetes mellitus",
		Kind:          KindCondition,
		Category:      "endocrine",
		Synonyms:      []string{"diabetes", "diabetic condition"},
		Abbreviations: []string{"dm"},
		Codes:         []CodeRef{{Code: "E11", System: SystemICD10CM, Description: "Type 2 diabetes mellitus", Category: "endocrine"}},
	},
	{
		CanonicalName: "myocardial infarction",
		Kind:          KindCondition,
		Category:      "cardiovascular",
		Synonyms:      []string{"heart attack", "cardiac arrest"},
		Abbreviations: []string{"mi", "ami"},
		Codes:         []CodeRef{{Code: "I21", System: SystemICD10CM, Description: "Acute myocardial infarction", Category: "cardiovascular"}},
	},
	{
		CanonicalName: "pneumonia",
		Kind:          KindCondition,
		Category:      "respiratory",
		Synonyms:      []string{"lung infection", "respiratory infection"},
		Abbreviations: []string{"pna"},
		Codes:         []CodeRef{{Code: "J18", System: SystemICD10CM, Description: "Pneumonia, unspecified organism", Category: "respiratory"}},
	},
	{
		CanonicalName: "chronic obstructive pulmonary disease",
		Kind:          KindCondition,
		Category:      "respiratory",
		Synonyms:      []string{"chronic bronchitis", "emphysema"},
		Abbreviations: []string{"copd"},
		Codes:         []CodeRef{{Code: "J44", System: SystemICD10CM, Description: "Other chronic obstructive pulmonary disease", Category: "respiratory"}},
	},
	{
		CanonicalName: "fracture",
		Kind:          KindCondition,
		Category:      "musculoskeletal",
		Synonyms:      []string{"broken bone"},
		Abbreviations: []string{"fx"},
	},
	{
		CanonicalName: "migraine",
		Kind:          KindCondition,
		Category:      "neurological",
		Synonyms:      []string{"severe headache", "headache"},
	},
	{
		CanonicalName: "asthma",
		Kind:          KindCondition,
		Category:      "respiratory",
		Synonyms:      []string{"breathing difficulty", "wheezing"},
	},
	{
		CanonicalName: "depression",
		Kind:          KindCondition,
		Category:      "mental",
		Synonyms:      []string{"depressive disorder", "mood disorder"},
	},

	// Medications
	{
		CanonicalName: "metformin",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"glucophage", "fortamet", "glumetza"},
	},
	{
		CanonicalName: "lisinopril",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"prinivil", "zestril"},
	},
	{
		CanonicalName: "atorvastatin",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"lipitor"},
	},
	{
		CanonicalName: "metoprolol",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"lopressor", "toprol"},
	},
	{
		CanonicalName: "amlodipine",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"norvasc"},
	},
	{
		CanonicalName: "omeprazole",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"prilosec"},
	},
	{
		CanonicalName: "levothyroxine",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"synthroid"},
	},
	{
		CanonicalName: "albuterol",
		Kind:          KindMedication,
		Category:      "medication",
		Synonyms:      []string{"proventil", "ventolin"},
	},

	// Anatomy
	{
		CanonicalName: "heart",
		Kind:          KindBodyPart,
		Category:      "anatomy",
		Synonyms:      []string{"cardiac", "cardio"},
	},
	{
		CanonicalName: "lung",
		Kind:          KindBodyPart,
		Category:      "anatomy",
		Synonyms:      []string{"pulmonary"},
		Abbreviations: []string{"pulm"},
	},
	{
		CanonicalName: "kidney",
		Kind:          KindBodyPart,
		Category:      "anatomy",
		Synonyms:      []string{"renal", "nephro"},
	},
	{
		CanonicalName: "liver",
		Kind:          KindBodyPart,
		Category:      "anatomy",
		Synonyms:      []string{"hepatic", "hepato"},
	},
	{
		CanonicalName: "chest",
		Kind:          KindBodyPart,
		Category:      "anatomy",
		Synonyms:      []string{"thorax", "thoracic"},
	},
	{
		CanonicalName: "abdomen",
		Kind:          KindBodyPart,
		Category:      "anatomy",
		Synonyms:      []string{"belly", "abdominal"},
	},
}

var seedCodes = []MedicalCode{
	// ICD-10-CM diagnosis codes
	{Code: "I10", System: SystemICD10CM, Description: "Essential (primary) hypertension", Category: "cardiovascular",
		Synonyms: []string{"hypertension", "high blood pressure", "htn"}},
	{Code: "E11.9", System: SystemICD10CM, Description: "Type 2 diabetes mellitus without complications", Category: "endocrine",
		Synonyms: []string{"diabetes", "diabetes mellitus", "dm", "type 2 diabetes"}, ParentCodes: []string{"E11"}},
	{Code: "E11", System: SystemICD10CM, Description: "Type 2 diabetes mellitus", Category: "endocrine",
		ChildCodes: []string{"E11.9"}},
	{Code: "I21.9", System: SystemICD10CM, Description: "Acute myocardial infarction, unspecified", Category: "cardiovascular",
		Synonyms: []string{"heart attack", "myocardial infarction", "mi", "acute mi"}},
	{Code: "J44.1", System: SystemICD10CM, Description: "Chronic obstructive pulmonary disease with acute exacerbation", Category: "respiratory",
		Synonyms: []string{"copd", "chronic obstructive pulmonary disease", "emphysema"}},
	{Code: "N18.6", System: SystemICD10CM, Description: "End stage renal disease", Category: "genitourinary",
		Synonyms: []string{"kidney failure", "renal failure", "esrd", "end stage renal disease"}},
	{Code: "F32.9", System: SystemICD10CM, Description: "Major depressive disorder, single episode, unspecified", Category: "mental",
		Synonyms: []string{"depression", "major depression", "depressive disorder"}},
	{Code: "M79.3", System: SystemICD10CM, Description: "Panniculitis, unspecified", Category: "musculoskeletal",
		Synonyms: []string{"muscle pain", "myalgia", "muscle ache"}},
	{Code: "R50.9", System: SystemICD10CM, Description: "Fever, unspecified", Category: "symptoms",
		Synonyms: []string{"fever", "pyrexia", "elevated temperature"}},
	{Code: "G43.909", System: SystemICD10CM, Description: "Migraine, unspecified, not intractable, without status migrainosus", Category: "neurological",
		Synonyms: []string{"migraine", "headache", "severe headache"}},
	{Code: "J18.9", System: SystemICD10CM, Description: "Pneumonia, unspecified organism", Category: "respiratory",
		Synonyms: []string{"pneumonia", "lung infection", "respiratory infection"}},

	// CPT procedure codes
	{Code: "99213", System: SystemCPT, Description: "Office or other outpatient visit for evaluation and management", Category: "evaluation",
		Synonyms: []string{"office visit", "outpatient visit", "consultation"}},
	{Code: "99214", System: SystemCPT, Description: "Office or other outpatient visit for evaluation and management", Category: "evaluation",
		Synonyms: []string{"detailed office visit", "comprehensive visit"}},
	{Code: "93000", System: SystemCPT, Description: "Electrocardiogram, routine ECG with at least 12 leads", Category: "diagnostic",
		Synonyms: []string{"ecg", "ekg", "electrocardiogram", "heart test"}},
	{Code: "80053", System: SystemCPT, Description: "Comprehensive metabolic panel", Category: "laboratory",
		Synonyms: []string{"cmp", "metabolic panel", "blood chemistry", "basic metabolic panel"}},
	{Code: "85025", System: SystemCPT, Description: "Blood count; complete (CBC), automated", Category: "laboratory",
		Synonyms: []string{"cbc", "complete blood count", "blood count", "full blood count"}},
	{Code: "36415", System: SystemCPT, Description: "Collection of venous blood by venipuncture", Category: "procedure",
		Synonyms: []string{"blood draw", "venipuncture", "phlebotomy"}},
	{Code: "71020", System: SystemCPT, Description: "Radiologic examination, chest, 2 views", Category: "radiology",
		Synonyms: []string{"chest x-ray", "chest xray", "cxr", "chest radiograph"}},
	{Code: "73060", System: SystemCPT, Description: "Radiologic examination; knee, 1 or 2 views", Category: "radiology",
		Synonyms: []string{"knee x-ray", "knee xray", "knee radiograph"}},
	{Code: "76700", System: SystemCPT, Description: "Ultrasound, abdominal, real time with image documentation", Category: "radiology",
		Synonyms: []string{"abdominal ultrasound", "ultrasound abdomen", "abdominal us"}},
	{Code: "90471", System: SystemCPT, Description: "Immunization administration", Category: "immunization",
		Synonyms: []string{"vaccination", "immunization", "vaccine administration", "shot"}},

	// HCPCS codes
	{Code: "J7050", System: SystemHCPCS, Description: "Infusion, normal saline solution, 1000 cc", Category: "medication",
		Synonyms: []string{"normal saline", "saline infusion", "iv saline"}},
	{Code: "A4253", System: SystemHCPCS, Description: "Blood glucose test or reagent strips", Category: "supplies",
		Synonyms: []string{"glucose strips", "blood sugar strips", "test strips"}},
	{Code: "E0424", System: SystemHCPCS, Description: "Stationary compressed gaseous oxygen system", Category: "equipment",
		Synonyms: []string{"oxygen concentrator", "oxygen system", "home oxygen"}},
}

var seedAbbreviations = map[string]string{
	// Vital signs
	"bp":    "blood pressure",
	"hr":    "heart rate",
	"rr":    "respiratory rate",
	"temp":  "temperature",
	"o2sat": "oxygen saturation",
	"bmi":   "body mass index",

	// Conditions
	"htn":  "hypertension",
	"dm":   "diabetes mellitus",
	"mi":   "myocardial infarction",
	"copd": "chronic obstructive pulmonary disease",
	"chf":  "congestive heart failure",
	"afib": "atrial fibrillation",
	"cad":  "coronary artery disease",
	"ckd":  "chronic kidney disease",

	// Medications
	"asa":   "aspirin",
	"acei":  "ace inhibitor",
	"arb":   "angiotensin receptor blocker",
	"ppi":   "proton pump inhibitor",
	"nsaid": "nonsteroidal anti-inflammatory drug",

	// Units
	"mg":  "milligrams",
	"ml":  "milliliters",
	"mcg": "micrograms",
	"iu":  "international units",
	"bid": "twice daily",
	"tid": "three times daily",
	"qid": "four times daily",
	"prn": "as needed",

	// Time
	"qd":  "once daily",
	"qod": "every other day",
	"qhs": "at bedtime",
	"ac":  "before meals",
	"pc":  "after meals",

	// Routes
	"po": "by mouth",
	"iv": "intravenous",
	"im": "intramuscular",
	"sq": "subcutaneous",
	"sl": "sublingual",
	"pr": "per rectum",
}
