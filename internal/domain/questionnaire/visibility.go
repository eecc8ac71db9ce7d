package questionnaire

import "strconv"

// Dependency conditions. Anything else evaluates as eq.
const (
	CondEq  = "eq"
	CondNeq = "neq"
	CondGt  = "gt"
	CondGte = "gte"
	CondLt  = "lt"
	CondLte = "lte"
)

// IsVisible decides whether a question is currently applicable given the
// answers so far. Questions without a dependency rule are always visible.
// A rule whose parent question cannot be resolved, or whose parent is
// unanswered, hides the question (fail closed). Pure; the live form and
// historical read views call it with identical semantics.
func IsVisible(q *Question, answers AnswerSet, all []*Question) bool {
	if !q.HasDependency() {
		return true
	}

	parent := resolveParent(q, all)
	if parent == nil {
		return false
	}

	ans, ok := answers[parent.ID]
	if !ok || ans.IsEmpty() {
		return false
	}

	return evalCondition(q.Metadata.DependsOnCondition, ans.Value, string(q.Metadata.DependsOnValue))
}

// resolveParent prefers the id reference set at catalog load; the exact
// text match remains only for questions evaluated outside a loaded catalog.
func resolveParent(q *Question, all []*Question) *Question {
	if q.DependsOnQuestionID != nil {
		for _, p := range all {
			if p.ID == *q.DependsOnQuestionID {
				return p
			}
		}
		return nil
	}
	for _, p := range all {
		if p.Text == q.Metadata.DependsOnQuestionText {
			return p
		}
	}
	return nil
}

func evalCondition(cond, got, want string) bool {
	switch cond {
	case CondNeq:
		return got != want
	case CondGt, CondGte, CondLt, CondLte:
		g, err1 := strconv.ParseFloat(got, 64)
		w, err2 := strconv.ParseFloat(want, 64)
		if err1 != nil || err2 != nil {
			return false
		}
		switch cond {
		case CondGt:
			return g > w
		case CondGte:
			return g >= w
		case CondLt:
			return g < w
		default:
			return g <= w
		}
	default:
		return got == want
	}
}

// ResolveDependencies fills DependsOnQuestionID on every question whose
// metadata names a parent by text. Unresolvable references are left nil and
// the question stays hidden per IsVisible.
func ResolveDependencies(questions []*Question) {
	byText := make(map[string]*Question, len(questions))
	for _, q := range questions {
		byText[q.Text] = q
	}
	for _, q := range questions {
		if q.Metadata.DependsOnQuestionText == "" {
			continue
		}
		if p, ok := byText[q.Metadata.DependsOnQuestionText]; ok {
			id := p.ID
			q.DependsOnQuestionID = &id
		}
	}
}
