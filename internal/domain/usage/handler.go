package usage

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
	g.POST("/servicios/", h.Create)
	g.GET("/servicios/informe/:id", h.Report)
}

type createRequest struct {
	PatientID   uuid.UUID     `json:"id_paciente"`
	Description string        `json:"descripcion"`
	Date        dateonly.Date `json:"fecha"`
	Cost        float64       `json:"costo"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id_paciente es obligatorio")
	}

	u := &UsedService{
		PatientID:   req.PatientID,
		Description: req.Description,
		Date:        req.Date,
		Cost:        req.Cost,
	}
	if err := h.svc.Create(c.Request().Context(), u); err != nil {
		if errors.Is(err, ErrUnknownPatient) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Report(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador de paciente inválido")
	}

	from, err := parseDateParam(c.QueryParam("fecha_inicio"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fecha_inicio inválida, se espera AAAA-MM-DD")
	}
	to, err := parseDateParam(c.QueryParam("fecha_fin"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fecha_fin inválida, se espera AAAA-MM-DD")
	}

	report, err := h.svc.Report(c.Request().Context(), patientID, from, to)
	if err != nil {
		if errors.Is(err, ErrUnknownPatient) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

func parseDateParam(s string) (*dateonly.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := dateonly.Parse(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
