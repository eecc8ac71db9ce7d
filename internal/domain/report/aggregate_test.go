package report

import (
	"testing"

	"github.com/postcare/postcare/internal/domain/questionnaire"
)

func abnormal(critical bool, details ...string) questionnaire.Classification {
	return questionnaire.Classification{Abnormal: true, Critical: critical, Details: details}
}

func normal() questionnaire.Classification {
	return questionnaire.Classification{}
}

func repeat(c questionnaire.Classification, n int) []questionnaire.Classification {
	out := make([]questionnaire.Classification, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestAggregate_Empty(t *testing.T) {
	v := Aggregate(nil)
	if v.Severity != SeverityNone {
		t.Errorf("expected none, got %q", v.Severity)
	}
}

func TestAggregate_ThreeCriticalIsCritical(t *testing.T) {
	v := Aggregate(repeat(abnormal(true), 3))
	if v.Severity != SeverityCritical {
		t.Errorf("expected critical, got %q", v.Severity)
	}
	if v.Reason != "3+ critical signs detected." {
		t.Errorf("unexpected reason: %q", v.Reason)
	}
}

func TestAggregate_TwoCriticalFallsThrough(t *testing.T) {
	v := Aggregate(repeat(abnormal(true), 2))
	if v.Severity != SeverityNone {
		t.Errorf("2 critical abnormal alone should be none, got %q", v.Severity)
	}
}

func TestAggregate_FiveNonCriticalIsCritical(t *testing.T) {
	v := Aggregate(repeat(abnormal(false), 5))
	if v.Severity != SeverityCritical {
		t.Errorf("expected critical, got %q", v.Severity)
	}
	if v.Reason != "5+ warning signs detected." {
		t.Errorf("unexpected reason: %q", v.Reason)
	}
}

func TestAggregate_ThreeOrFourNonCriticalIsWarning(t *testing.T) {
	for _, n := range []int{3, 4} {
		v := Aggregate(repeat(abnormal(false), n))
		if v.Severity != SeverityWarning {
			t.Errorf("%d non-critical: expected warning, got %q", n, v.Severity)
		}
		if v.Reason != "3-4 warning signs detected." {
			t.Errorf("unexpected reason: %q", v.Reason)
		}
	}
}

func TestAggregate_TwoNonCriticalIsNone(t *testing.T) {
	v := Aggregate(repeat(abnormal(false), 2))
	if v.Severity != SeverityNone {
		t.Errorf("expected none, got %q", v.Severity)
	}
}

func TestAggregate_CriticalPathTakesPriority(t *testing.T) {
	cs := append(repeat(abnormal(true), 3), repeat(abnormal(false), 5)...)
	v := Aggregate(cs)
	if v.Reason != "3+ critical signs detected." {
		t.Errorf("critical count must be checked first, got reason %q", v.Reason)
	}
}

func TestAggregate_Monotonic(t *testing.T) {
	cs := repeat(abnormal(true), 3)
	if Aggregate(cs).Severity != SeverityCritical {
		t.Fatal("precondition: 3 critical is critical")
	}
	more := append(cs, abnormal(true))
	if Aggregate(more).Severity != SeverityCritical {
		t.Error("adding an abnormal critical answer must not downgrade the verdict")
	}
}

func TestAggregate_NormalAnswersDoNotCount(t *testing.T) {
	cs := append(repeat(normal(), 10), repeat(abnormal(false), 2)...)
	v := Aggregate(cs)
	if v.Severity != SeverityNone {
		t.Errorf("normal answers must not count, got %q", v.Severity)
	}
}

func TestAggregate_DetailsInClassificationOrder(t *testing.T) {
	cs := []questionnaire.Classification{
		abnormal(false, "Febre: Sim"),
		normal(),
		abnormal(true, "Falta de ar: Sim", "Falta de ar: Grave"),
	}
	v := Aggregate(cs)
	want := []string{"Febre: Sim", "Falta de ar: Sim", "Falta de ar: Grave"}
	if len(v.Details) != len(want) {
		t.Fatalf("expected %d details, got %d", len(want), len(v.Details))
	}
	for i := range want {
		if v.Details[i] != want[i] {
			t.Errorf("detail %d: expected %q, got %q", i, want[i], v.Details[i])
		}
	}
}

func TestVerdict_MedicalStatus(t *testing.T) {
	if (Verdict{Severity: SeverityNone}).MedicalStatus() != "stable" {
		t.Error("none maps to stable")
	}
	if (Verdict{Severity: SeverityWarning}).MedicalStatus() != "warning" {
		t.Error("warning maps to warning")
	}
	if (Verdict{Severity: SeverityCritical}).MedicalStatus() != "critical" {
		t.Error("critical maps to critical")
	}
}
