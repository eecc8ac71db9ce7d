package questionnaire

import (
	"strconv"
	"strings"
)

// Classification is the per-question evaluation outcome. An abnormal
// question contributes exactly once to severity counting no matter how many
// abnormal selections it carries; Symptoms and Details keep one entry per
// abnormal selection.
type Classification struct {
	Question *Question
	Abnormal bool
	Critical bool
	Symptoms []string
	Details  []string

	// Pain is set for the pain-scale question; PainLevel is its numeric
	// answer (0 when unparsable).
	Pain      bool
	PainLevel int

	// UnknownValue marks a select/boolean/multiselect answer that matched
	// no catalog option. Such answers classify as not abnormal; the
	// submission workflow logs them as a data-integrity hint.
	UnknownValue bool
}

// Classify evaluates one raw answer against its question's rules. The
// second return is false when the question is unanswered, in which case the
// question contributes nothing to severity.
func Classify(q *Question, ans Answer) (Classification, bool) {
	if ans.IsEmpty() {
		return Classification{}, false
	}

	c := Classification{Question: q, Critical: q.IsCritical()}

	switch q.InputType {
	case InputScale:
		classifyScale(q, ans.Value, &c)
	case InputBoolean, InputSelect:
		classifySelect(q, ans.Value, &c)
	case InputMultiselect:
		classifyMultiselect(q, ans, &c)
	case InputText:
		// Free text is informational only.
	}

	return c, true
}

// isPainQuestion matches the legacy pain question by its prompt text.
func isPainQuestion(q *Question) bool {
	return strings.Contains(strings.ToLower(q.Text), "dor")
}

func classifyScale(q *Question, raw string, c *Classification) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if isPainQuestion(q) {
		c.Pain = true
		if err == nil {
			c.PainLevel = int(v)
		}
	}
	if err != nil {
		return
	}
	// Scale answers count toward severity but carry no option label, so
	// they add nothing to the symptom list or alert details.
	if q.Metadata.AbnormalMin != nil {
		c.Abnormal = v >= *q.Metadata.AbnormalMin
	} else if c.Pain {
		// Legacy fallback for catalogs predating abnormal_min.
		c.Abnormal = v > 5
	}
}

func classifySelect(q *Question, raw string, c *Classification) {
	opt := matchOption(q, raw)
	if opt == nil {
		// Unmatched values classify as normal (fail open).
		c.UnknownValue = true
		return
	}
	if !opt.IsAbnormal {
		return
	}
	c.Abnormal = true
	c.Symptoms = append(c.Symptoms, q.Text)
	c.Details = append(c.Details, q.Text+": "+opt.Label)
}

func classifyMultiselect(q *Question, ans Answer, c *Classification) {
	values := ans.Values
	if values == nil && ans.Value != "" {
		values = []string{ans.Value}
	}
	for _, v := range values {
		opt := matchOption(q, v)
		if opt == nil {
			c.UnknownValue = true
			continue
		}
		if !opt.IsAbnormal {
			continue
		}
		c.Abnormal = true
		c.Symptoms = append(c.Symptoms, q.Text+" ("+opt.Label+")")
		c.Details = append(c.Details, q.Text+": "+opt.Label)
	}
}

func matchOption(q *Question, value string) *Option {
	for _, o := range q.Options {
		if o.Value == value {
			return o
		}
	}
	return nil
}
