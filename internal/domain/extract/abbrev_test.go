package extract

import (
	"context"
	"testing"

	"github.com/mednlp/mednlp/internal/domain/vocabulary"
)

func testStore(t *testing.T) *vocabulary.Store {
	t.Helper()
	b := vocabulary.NewBuilder()
	if err := b.Load(context.Background(), vocabulary.Seed()); err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return b.Freeze()
}

// =========== Expansion ===========

func TestExpandPreservesCaseAndPunctuation(t *testing.T) {
	e := NewExpander(testStore(t))
	got := e.Expand("Pt has HTN and DM.")
	want := "Pt has HYPERTENSION and DIABETES MELLITUS."
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandTitleCase(t *testing.T) {
	e := NewExpander(testStore(t))
	got := e.Expand("Temp: 98.6F")
	if got != "Temperature: 98.6F" {
		t.Errorf("Expand = %q", got)
	}
}

func TestExpandKeepsLineStructure(t *testing.T) {
	e := NewExpander(testStore(t))
	got := e.Expand("Medications:\nlisinopril 10mg qd\nmetformin 500mg bid")
	want := "Medications:\nlisinopril 10mg once daily\nmetformin 500mg twice daily"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandKeepsWrappingPunctuationInPlace(t *testing.T) {
	e := NewExpander(testStore(t))
	got := e.Expand("Vitals (BP) within range")
	want := "Vitals (BLOOD PRESSURE) within range"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
	if again := e.Expand(got); again != got {
		t.Errorf("second expansion changed text: %q", again)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	e := NewExpander(testStore(t))
	once := e.Expand("Pt has HTN, CHF and COPD.")
	twice := e.Expand(once)
	if once != twice {
		t.Errorf("second expansion changed text:\n once: %q\ntwice: %q", once, twice)
	}
}

func TestExpandLeavesUnknownTokens(t *testing.T) {
	e := NewExpander(testStore(t))
	text := "Patient reports xyz symptoms"
	if got := e.Expand(text); got != text {
		t.Errorf("Expand altered unknown text: %q", got)
	}
}

// =========== Detection ===========

func TestFindAbbreviations(t *testing.T) {
	e := NewExpander(testStore(t))
	got := e.FindAbbreviations("BP was elevated, HTN likely. Take ASA prn.")
	want := []string{"bp", "htn", "asa", "prn"}
	if len(got) != len(want) {
		t.Fatalf("found %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("found[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
