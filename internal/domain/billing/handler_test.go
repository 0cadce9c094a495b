package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandler_Create(t *testing.T) {
	svc, _, patientID := newTestService(nil)
	h := NewHandler(svc)
	e := echo.New()

	body := fmt.Sprintf(`{
		"id_paciente": %q,
		"fecha_emision": "2024-02-10",
		"monto_total": 550.0,
		"estado": "pagada",
		"detalles": [
			{"concepto": "Consulta general", "monto": 50.0},
			{"concepto": "Resonancia magnética", "monto": 500.0}
		]
	}`, patientID)
	req := httptest.NewRequest(http.MethodPost, "/facturas/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var inv Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(inv.LineItems) != 2 || inv.Status != StatusPaid {
		t.Errorf("unexpected payload: %s", rec.Body.String())
	}
}

func TestHandler_CreateUnknownPatient(t *testing.T) {
	svc, _, _ := newTestService(nil)
	h := NewHandler(svc)
	e := echo.New()

	body := fmt.Sprintf(`{"id_paciente": %q, "fecha_emision": "2024-02-10", "monto_total": 10.0}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/facturas/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListByPatient(t *testing.T) {
	svc, _, patientID := newTestService(nil)
	h := NewHandler(svc)
	e := echo.New()

	if err := svc.Create(context.Background(), testInvoice(patientID)); err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.ListByPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var invoices []Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &invoices); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(invoices) != 1 || len(invoices[0].LineItems) != 2 {
		t.Errorf("unexpected payload: %s", rec.Body.String())
	}
}

func TestHandler_ListByPatientNotFound(t *testing.T) {
	svc, _, _ := newTestService(nil)
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.ListByPatient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
	if httpErr.Message != "Paciente no encontrado" {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}
}
