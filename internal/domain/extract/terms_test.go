package extract

import "testing"

func TestTermMatcherFindsCanonicalTerms(t *testing.T) {
	m := NewTermMatcher(testStore(t))
	entities := m.Extract("Patient diagnosed with hypertension, started on metformin.")

	cond := findByLabel(entities, LabelConditions)
	if cond == nil {
		t.Fatal("condition not matched")
	}
	if cond.Text != "hypertension" || cond.Confidence != 0.85 {
		t.Errorf("condition = %+v", cond)
	}

	med := findByLabel(entities, LabelMedications)
	if med == nil || med.Text != "metformin" {
		t.Fatalf("medication = %+v", med)
	}
}

func TestTermMatcherResolvesSynonyms(t *testing.T) {
	m := NewTermMatcher(testStore(t))
	entities := m.Extract("Long history of high blood pressure.")

	var syn *Entity
	for i := range entities {
		if entities[i].Text == "high blood pressure" {
			syn = &entities[i]
		}
	}
	if syn == nil {
		t.Fatal("synonym not matched")
	}
	if syn.NormalizedForm != "hypertension" {
		t.Errorf("normalized = %q, want hypertension", syn.NormalizedForm)
	}
	if syn.Confidence != 0.80 {
		t.Errorf("synonym confidence = %v, want 0.80", syn.Confidence)
	}
}

func TestTermMatcherMatchesCaseInsensitive(t *testing.T) {
	m := NewTermMatcher(testStore(t))
	entities := m.Extract("ASSESSMENT: Hypertension.")
	if findByLabel(entities, LabelConditions) == nil {
		t.Fatal("uppercase mention not matched")
	}
}

func TestTermMatcherReportsEveryOccurrence(t *testing.T) {
	m := NewTermMatcher(testStore(t))
	entities := m.Extract("metformin in the morning, metformin at night")

	count := 0
	for _, e := range entities {
		if e.NormalizedForm == "metformin" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("occurrences = %d, want 2", count)
	}
}

func TestTermMatcherRespectsWordBoundaries(t *testing.T) {
	m := NewTermMatcher(testStore(t))
	// "hypertensive" must not match the term "hypertension".
	entities := m.Extract("hypertensive crisis")
	for _, e := range entities {
		if e.NormalizedForm == "hypertension" {
			t.Errorf("matched inside larger word: %+v", e)
		}
	}
}
