package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mednlp/mednlp/internal/domain/coding"
	"github.com/mednlp/mednlp/internal/domain/extract"
	"github.com/mednlp/mednlp/internal/domain/forms"
	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

func testPipeline(t *testing.T, adapter extract.ModelAdapter) *Service {
	t.Helper()
	b := vocabulary.NewBuilder()
	if err := b.Load(context.Background(), vocabulary.Seed()); err != nil {
		t.Fatalf("load seed: %v", err)
	}
	store := b.Freeze()
	return NewService(store, coding.NewService(store), forms.NewMapper(forms.NewRegistry()), adapter, zerolog.Nop())
}

type stubAdapter struct {
	entities []extract.Entity
	cls      *extract.Classification
	err      error
}

func (a *stubAdapter) Extract(_ context.Context, _ string) ([]extract.Entity, error) {
	return a.entities, a.err
}

func (a *stubAdapter) Classify(_ context.Context, _ string) (*extract.Classification, error) {
	return a.cls, a.err
}

// =========== Processing ===========

func TestProcessDemographicDocument(t *testing.T) {
	s := testPipeline(t, nil)
	result := s.Process(context.Background(), "Patient: John Doe, Age: 45, Insurance: INS123456", "")

	byLabel := map[string]extract.Entity{}
	for _, e := range result.Entities {
		byLabel[e.Label] = e
	}
	if byLabel[extract.LabelPatientName].Text != "John Doe" {
		t.Errorf("patient name = %+v", byLabel[extract.LabelPatientName])
	}
	if byLabel[extract.LabelAge].Text != "45" {
		t.Errorf("age = %+v", byLabel[extract.LabelAge])
	}
	if result.Analysis.Confidence <= 0 {
		t.Errorf("overall confidence = %v", result.Analysis.Confidence)
	}
	if result.ID.String() == "" {
		t.Error("missing result id")
	}
}

func TestProcessExpandsAbbreviationsAndMapsCodes(t *testing.T) {
	s := testPipeline(t, nil)
	result := s.Process(context.Background(), "Pt has HTN and DM.", "")

	if result.Analysis.NormalizedText != "Pt has HYPERTENSION and DIABETES MELLITUS." {
		t.Errorf("normalized = %q", result.Analysis.NormalizedText)
	}

	var hypertension *extract.Entity
	for i := range result.Entities {
		if result.Entities[i].NormalizedForm == "hypertension" {
			hypertension = &result.Entities[i]
		}
	}
	if hypertension == nil {
		t.Fatal("hypertension entity not found after expansion")
	}
	if hypertension.Label != "CONDITIONS" {
		t.Errorf("label = %q", hypertension.Label)
	}

	var i10 *CodeMapping
	for i := range result.CodeMappings {
		if result.CodeMappings[i].Code == "I10" {
			i10 = &result.CodeMappings[i]
		}
	}
	if i10 == nil {
		t.Fatalf("I10 mapping not found: %+v", result.CodeMappings)
	}
	if i10.System != vocabulary.SystemICD10CM || i10.MappingType != "diagnosis" {
		t.Errorf("mapping = %+v", i10)
	}
	if i10.Confidence <= 0 || i10.Confidence > 1.0 {
		t.Errorf("mapping confidence = %v", i10.Confidence)
	}
}

func TestProcessEntitiesDoNotOverlap(t *testing.T) {
	s := testPipeline(t, nil)
	result := s.Process(context.Background(),
		"Patient: Jane Roe, Age: 62. BP: 160/95 mmHg. Diagnosis: hypertension. Takes lisinopril 10 mg.", "")

	for i := 1; i < len(result.Entities); i++ {
		prev, cur := result.Entities[i-1], result.Entities[i]
		if cur.Start < prev.End {
			t.Errorf("entities overlap: %+v / %+v", prev, cur)
		}
	}
}

func TestProcessSurvivesAdapterFailure(t *testing.T) {
	s := testPipeline(t, &stubAdapter{err: errors.New("model unavailable")})
	result := s.Process(context.Background(), "Patient: John Doe has hypertension", "")

	if len(result.Entities) == 0 {
		t.Fatal("rule-based extraction should survive adapter failure")
	}
}

func TestProcessMergesAdapterEntities(t *testing.T) {
	adapter := &stubAdapter{entities: []extract.Entity{
		{Text: "Springfield General", Label: "ORGANIZATION", Start: 100, End: 119, Confidence: 0.9},
	}}
	s := testPipeline(t, adapter)
	result := s.Process(context.Background(), "Patient: John Doe", "")

	found := false
	for _, e := range result.Entities {
		if e.Label == "ORGANIZATION" {
			found = true
		}
	}
	if !found {
		t.Error("adapter entity not merged")
	}
}

// =========== Insights and suggestions ===========

func TestProcessFlagsRiskFactors(t *testing.T) {
	s := testPipeline(t, nil)
	result := s.Process(context.Background(), "History of hypertension and diabetes mellitus.", "")

	conditions := map[string]bool{}
	for _, rf := range result.Insights.RiskFactors {
		conditions[rf.Condition] = true
		if rf.Recommendation == "" {
			t.Errorf("risk factor without recommendation: %+v", rf)
		}
	}
	if !conditions["hypertension"] || !conditions["diabetes"] {
		t.Errorf("risk factors = %v", result.Insights.RiskFactors)
	}
}

func TestProcessSuggestsMissingInfo(t *testing.T) {
	s := testPipeline(t, nil)
	result := s.Process(context.Background(), "Follow-up note. BP stable.", "")

	types := map[string]Suggestion{}
	for _, sg := range result.Suggestions {
		types[sg.Type+":"+sg.Message] = sg
	}
	if _, ok := types[SuggestionMissingInfo+":Patient name not clearly identified"]; !ok {
		t.Errorf("missing patient name suggestion absent: %+v", result.Suggestions)
	}
	if _, ok := types[SuggestionMissingInfo+":No clear diagnosis found"]; !ok {
		t.Errorf("missing diagnosis suggestion absent: %+v", result.Suggestions)
	}
}

func TestProcessSuggestsAbbreviationExpansion(t *testing.T) {
	s := testPipeline(t, nil)
	result := s.Process(context.Background(), "Patient: John Doe, Age: 45. Has HTN, on ASA.", "")

	found := false
	for _, sg := range result.Suggestions {
		if sg.Type == SuggestionAbbreviations {
			found = true
			if sg.Priority != PriorityLow {
				t.Errorf("abbreviation priority = %q", sg.Priority)
			}
		}
	}
	if !found {
		t.Errorf("abbreviation suggestion absent: %+v", result.Suggestions)
	}
}

// =========== Auto-fill ===========

func TestAutoFillPatientIntake(t *testing.T) {
	s := testPipeline(t, nil)
	text := "Patient: John Doe, DOB: 03/15/1979, Insurance: INS123456\nChief Complaint: chest pain"
	result, err := s.AutoFill(context.Background(), text, "patient_intake", nil)
	if err != nil {
		t.Fatal(err)
	}

	name := result.Form.MappedFields["patient_name"]
	if name.Value == nil || *name.Value != "John Doe" {
		t.Errorf("patient_name = %+v", name)
	}
	if result.Form.CompletionRate <= 0 {
		t.Errorf("completion rate = %v", result.Form.CompletionRate)
	}
}

func TestAutoFillUnknownFormType(t *testing.T) {
	s := testPipeline(t, nil)
	_, err := s.AutoFill(context.Background(), "Patient: John Doe", "no_such_form", nil)
	if !errors.Is(err, forms.ErrUnknownFormType) {
		t.Fatalf("err = %v, want ErrUnknownFormType", err)
	}
}

// =========== Classification ===========

func TestClassifyPrefersAdapter(t *testing.T) {
	adapter := &stubAdapter{cls: &extract.Classification{
		DocumentType: "lab_report",
		Specialty:    "internal_medicine",
		Confidence:   0.93,
	}}
	s := testPipeline(t, adapter)

	cls := s.Classify(context.Background(), "CBC results attached")
	if cls.DocumentType != "lab_report" || cls.Method != "model" {
		t.Errorf("classification = %+v", cls)
	}
}

func TestClassifyFallsBackOnAdapterError(t *testing.T) {
	s := testPipeline(t, &stubAdapter{err: errors.New("model unavailable")})
	cls := s.Classify(context.Background(), "Discharge summary: hospital course uneventful.")
	if cls.Method != "rule_based" {
		t.Errorf("method = %q, want rule_based", cls.Method)
	}
	if cls.DocumentType != "discharge_summary" {
		t.Errorf("document type = %q", cls.DocumentType)
	}
}
