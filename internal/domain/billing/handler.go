package billing

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mutua/mutua/pkg/dateonly"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/facturas/", h.Create)
	g.GET("/facturas/paciente/:id", h.ListByPatient)
}

type lineItemRequest struct {
	Concept string  `json:"concepto"`
	Amount  float64 `json:"monto"`
}

type createRequest struct {
	PatientID uuid.UUID         `json:"id_paciente"`
	IssueDate dateonly.Date     `json:"fecha_emision"`
	Total     float64           `json:"monto_total"`
	Status    string            `json:"estado"`
	LineItems []lineItemRequest `json:"detalles"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id_paciente es obligatorio")
	}

	inv := &Invoice{
		PatientID: req.PatientID,
		IssueDate: req.IssueDate,
		Total:     req.Total,
		Status:    req.Status,
	}
	for _, item := range req.LineItems {
		inv.LineItems = append(inv.LineItems, &LineItem{Concept: item.Concept, Amount: item.Amount})
	}

	if err := h.svc.Create(c.Request().Context(), inv); err != nil {
		if errors.Is(err, ErrUnknownPatient) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador de paciente inválido")
	}

	invoices, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrUnknownPatient) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if invoices == nil {
		invoices = []*Invoice{}
	}
	return c.JSON(http.StatusOK, invoices)
}
