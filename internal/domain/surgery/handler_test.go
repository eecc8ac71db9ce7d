package surgery

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_CreateType(t *testing.T) {
	h, e := newTestHandler()
	body := `{"name":"Apendicectomia","expected_recovery_days":14}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/surgery-types", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateType(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateType_BadRequest(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/surgery-types", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateType(c); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestHandler_CreateSurgery(t *testing.T) {
	h, e := newTestHandler()
	body := `{"patient_id":"` + uuid.New().String() + `","doctor_id":"` + uuid.New().String() +
		`","surgery_type_id":"` + uuid.New().String() + `","surgery_date":"2026-08-20T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/surgeries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_GetSurgery_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Get(c)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetSurgery(t *testing.T) {
	h, e := newTestHandler()
	sg := &Surgery{
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		SurgeryTypeID: uuid.New(),
		SurgeryDate:   time.Now(),
	}
	if err := h.svc.Create(nil, sg); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sg.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListByDoctor_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.ListByDoctor(c); err == nil {
		t.Error("expected bad-request error for malformed id")
	}
}
