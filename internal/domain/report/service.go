package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/postcare/postcare/internal/domain/questionnaire"
	"github.com/postcare/postcare/internal/domain/surgery"
)

// QuestionSource supplies the active questionnaire for a surgery type with
// options loaded and dependencies resolved.
type QuestionSource interface {
	GetQuestionnaire(ctx context.Context, surgeryTypeID uuid.UUID) ([]*questionnaire.Question, error)
}

// SurgeryStore is the slice of the surgery service the workflow needs.
type SurgeryStore interface {
	Get(ctx context.Context, id uuid.UUID) (*surgery.Surgery, error)
	UpdateMedicalStatus(ctx context.Context, id uuid.UUID, status string) error
}

// TxRunner runs fn inside a database transaction scoped onto the context.
// Nil means no transaction wrapping (tests, single-statement stores).
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	reports   ReportRepository
	alerts    AlertRepository
	surgeries SurgeryStore
	questions QuestionSource
	tx        TxRunner
	log       zerolog.Logger
}

func NewService(reports ReportRepository, alerts AlertRepository, surgeries SurgeryStore, questions QuestionSource, tx TxRunner, log zerolog.Logger) *Service {
	return &Service{
		reports:   reports,
		alerts:    alerts,
		surgeries: surgeries,
		questions: questions,
		tx:        tx,
		log:       log,
	}
}

// Submit loads the surgery and its questionnaire, then runs the daily
// report workflow. Returns (nil, nil) when the surgery does not exist.
func (s *Service) Submit(ctx context.Context, surgeryID uuid.UUID, answers questionnaire.AnswerSet) (*DailyReport, error) {
	sg, err := s.surgeries.Get(ctx, surgeryID)
	if err != nil {
		return nil, err
	}
	if sg == nil {
		return nil, nil
	}
	questions, err := s.questions.GetQuestionnaire(ctx, sg.SurgeryTypeID)
	if err != nil {
		return nil, err
	}
	return s.SubmitDailyReport(ctx, sg.PatientID, surgeryID, answers, questions)
}

// SubmitDailyReport is the evaluation engine:
// Validate -> Classify -> Aggregate -> Persist-Report -> Persist-Alert -> Update-Status.
// The report write is the only fatal persistence step; alert creation and
// the status update are best-effort and only logged on failure.
func (s *Service) SubmitDailyReport(ctx context.Context, patientID, surgeryID uuid.UUID, answers questionnaire.AnswerSet, questions []*questionnaire.Question) (*DailyReport, error) {
	questionnaire.ResolveDependencies(questions)

	if missing := missingRequired(questions, answers); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	var classifications []questionnaire.Classification
	var symptoms []string
	painLevel := 0
	for _, q := range questions {
		c, ok := questionnaire.Classify(q, answers[q.ID])
		if !ok {
			continue
		}
		if c.UnknownValue {
			s.log.Debug().
				Str("surgery_id", surgeryID.String()).
				Str("question", q.Text).
				Msg("answer matched no catalog option, treating as normal")
		}
		if c.Pain {
			painLevel = c.PainLevel
		}
		symptoms = append(symptoms, c.Symptoms...)
		classifications = append(classifications, c)
	}

	verdict := Aggregate(classifications)

	now := time.Now()
	r := &DailyReport{
		SurgeryID: surgeryID,
		PatientID: patientID,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Answers:   answers,
		PainLevel: painLevel,
		Symptoms:  symptoms,
	}
	if err := s.runTx(ctx, func(ctx context.Context) error {
		return s.reports.Create(ctx, r)
	}); err != nil {
		if errors.Is(err, ErrDuplicateReport) {
			return nil, err
		}
		return nil, &PersistenceError{Err: err}
	}

	if verdict.Severity != SeverityNone {
		a := &Alert{
			SurgeryID: surgeryID,
			ReportID:  &r.ID,
			Severity:  verdict.Severity,
			Message:   verdict.Reason + " Details: " + strings.Join(verdict.Details, ", "),
		}
		if err := s.alerts.Create(ctx, a); err != nil {
			s.log.Error().Err(err).
				Str("surgery_id", surgeryID.String()).
				Str("report_id", r.ID.String()).
				Msg("alert write failed, report is durable")
		} else {
			r.Alerts = append(r.Alerts, a)
		}
	}

	if err := s.surgeries.UpdateMedicalStatus(ctx, surgeryID, verdict.MedicalStatus()); err != nil {
		s.log.Error().Err(err).
			Str("surgery_id", surgeryID.String()).
			Str("status", verdict.MedicalStatus()).
			Msg("medical status update failed, report is durable")
	}

	return r, nil
}

func (s *Service) runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx(ctx, fn)
}

func missingRequired(questions []*questionnaire.Question, answers questionnaire.AnswerSet) []string {
	var missing []string
	for _, q := range questions {
		if !questionnaire.IsVisible(q, answers, questions) {
			continue
		}
		if q.IsOptional() {
			continue
		}
		if answers[q.ID].IsEmpty() {
			missing = append(missing, q.Text)
		}
	}
	return missing
}

// -- Read side --

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*DailyReport, error) {
	r, err := s.reports.GetByID(ctx, id)
	if err != nil || r == nil {
		return r, err
	}
	if err := s.attachAlerts(ctx, []*DailyReport{r}); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListBySurgery(ctx context.Context, surgeryID uuid.UUID, limit, offset int) ([]*DailyReport, int, error) {
	reports, total, err := s.reports.ListBySurgery(ctx, surgeryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachAlerts(ctx, reports); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*DailyReport, int, error) {
	reports, total, err := s.reports.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachAlerts(ctx, reports); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// attachAlerts joins alerts onto reports. The report_id key is
// authoritative; legacy alerts without one fall back to matching the
// calendar date within the same surgery.
func (s *Service) attachAlerts(ctx context.Context, reports []*DailyReport) error {
	bySurgery := make(map[uuid.UUID][]*Alert)
	for _, r := range reports {
		if _, done := bySurgery[r.SurgeryID]; done {
			continue
		}
		alerts, _, err := s.alerts.ListBySurgery(ctx, r.SurgeryID, false, pageAll, 0)
		if err != nil {
			return err
		}
		bySurgery[r.SurgeryID] = alerts
	}
	for _, r := range reports {
		for _, a := range bySurgery[r.SurgeryID] {
			if a.ReportID != nil {
				if *a.ReportID == r.ID {
					r.Alerts = append(r.Alerts, a)
				}
				continue
			}
			if sameCalendarDay(a.CreatedAt, r.Date) {
				r.Alerts = append(r.Alerts, a)
			}
		}
	}
	return nil
}

// pageAll bounds the per-surgery alert join; recovery episodes are weeks
// long, not thousands of alerts.
const pageAll = 1000

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *Service) ListAlerts(ctx context.Context, surgeryID uuid.UUID, unresolvedOnly bool, limit, offset int) ([]*Alert, int, error) {
	return s.alerts.ListBySurgery(ctx, surgeryID, unresolvedOnly, limit, offset)
}

func (s *Service) ResolveAlert(ctx context.Context, id uuid.UUID) (*Alert, error) {
	if err := s.alerts.Resolve(ctx, id); err != nil {
		return nil, err
	}
	return s.alerts.GetByID(ctx, id)
}
