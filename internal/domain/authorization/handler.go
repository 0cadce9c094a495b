package authorization

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/autorizaciones/", h.List)
	g.POST("/autorizaciones/", h.Request)
	g.GET("/autorizaciones/paciente/:id", h.ListByPatient)
}

func (h *Handler) List(c echo.Context) error {
	auths, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if auths == nil {
		auths = []*Authorization{}
	}
	return c.JSON(http.StatusOK, auths)
}

type requestBody struct {
	PatientID   uuid.UUID `json:"id_paciente" query:"id_paciente"`
	TreatmentID uuid.UUID `json:"id_tratamiento" query:"id_tratamiento"`
	Comments    string    `json:"comentarios" query:"comentarios"`
}

type requestResponse struct {
	Message       string         `json:"mensaje"`
	Authorization *Authorization `json:"autorizacion,omitempty"`
}

func (h *Handler) Request(c echo.Context) error {
	var req requestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The parameters are also accepted on the query string, which echo's
	// default binder skips for POST. The body wins when both are present.
	if req.PatientID == uuid.Nil || req.TreatmentID == uuid.Nil {
		if err := echo.QueryParamsBinder(c).
			TextUnmarshaler("id_paciente", &req.PatientID).
			TextUnmarshaler("id_tratamiento", &req.TreatmentID).
			String("comentarios", &req.Comments).
			BindError(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "id_paciente o id_tratamiento inválido")
		}
	}
	if req.PatientID == uuid.Nil || req.TreatmentID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id_paciente e id_tratamiento son obligatorios")
	}

	outcome, err := h.svc.Request(c.Request().Context(), req.PatientID, req.TreatmentID, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownPatient):
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		case errors.Is(err, ErrUnknownTreatment):
			return echo.NewHTTPError(http.StatusNotFound, "Tratamiento no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !outcome.Required {
		return c.JSON(http.StatusOK, requestResponse{
			Message: "Este tratamiento no requiere autorización previa",
		})
	}
	return c.JSON(http.StatusCreated, requestResponse{
		Message:       "Tratamiento autorizado correctamente",
		Authorization: outcome.Authorization,
	})
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador de paciente inválido")
	}

	auths, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrUnknownPatient) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if auths == nil {
		auths = []*Authorization{}
	}
	return c.JSON(http.StatusOK, auths)
}
