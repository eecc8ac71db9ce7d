package report

import (
	"github.com/postcare/postcare/internal/domain/questionnaire"
)

const (
	SeverityNone     = "none"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Verdict is the per-submission outcome driving alert creation and the
// surgery's medical status.
type Verdict struct {
	Severity string
	Reason   string
	Details  []string
}

// Aggregate counts abnormal answers into critical and non-critical buckets
// and maps the counts to a severity. Each abnormal question counts exactly
// once regardless of how many abnormal selections it carries; the critical
// bucket is always checked first. The thresholds are exact.
func Aggregate(classifications []questionnaire.Classification) Verdict {
	var criticalCount, nonCriticalCount int
	var details []string

	for _, c := range classifications {
		if !c.Abnormal {
			continue
		}
		if c.Critical {
			criticalCount++
		} else {
			nonCriticalCount++
		}
		details = append(details, c.Details...)
	}

	v := Verdict{Severity: SeverityNone, Details: details}
	switch {
	case criticalCount >= 3:
		v.Severity = SeverityCritical
		v.Reason = "3+ critical signs detected."
	case nonCriticalCount >= 5:
		v.Severity = SeverityCritical
		v.Reason = "5+ warning signs detected."
	case nonCriticalCount >= 3:
		v.Severity = SeverityWarning
		v.Reason = "3-4 warning signs detected."
	}
	return v
}

// MedicalStatus maps the verdict to the surgery's rolling status.
func (v Verdict) MedicalStatus() string {
	if v.Severity == SeverityNone {
		return "stable"
	}
	return v.Severity
}
