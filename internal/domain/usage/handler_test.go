package usage

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandler_Report(t *testing.T) {
	svc, _, patientID := newTestService()
	seedServices(t, svc, patientID)
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?fecha_inicio=2024-02-05&fecha_fin=2024-03-20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.Report(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Total != 530.0 || len(report.Services) != 2 {
		t.Errorf("unexpected report: %s", rec.Body.String())
	}
	if report.Period.From != "2024-02-05" {
		t.Errorf("period mismatch: %+v", report.Period)
	}
}

func TestHandler_ReportBadDate(t *testing.T) {
	svc, _, patientID := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?fecha_inicio=15-05-2024", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	err := h.Report(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ReportUnknownPatient(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Report(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if httpErr.Message != "Paciente no encontrado" {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}
}

func TestHandler_Create(t *testing.T) {
	svc, _, patientID := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	body := fmt.Sprintf(`{"id_paciente":%q,"descripcion":"Consulta general","fecha":"2024-01-10","costo":50.0}`, patientID)
	req := httptest.NewRequest(http.MethodPost, "/servicios/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"fecha":"2024-01-10"`) {
		t.Errorf("unexpected payload: %s", rec.Body.String())
	}
}
