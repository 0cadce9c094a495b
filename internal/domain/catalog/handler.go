package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/tratamientos/", h.ListTreatments)
	g.POST("/tratamientos/", h.CreateTreatment)
	g.GET("/servicios-clinica/", h.ListClinicServices)
	g.POST("/servicios-clinica/", h.CreateClinicService)
	g.GET("/servicios-clinica/mutua", h.ListMutuaServices)
}

func (h *Handler) ListTreatments(c echo.Context) error {
	treatments, err := h.svc.ListTreatments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if treatments == nil {
		treatments = []*Treatment{}
	}
	return c.JSON(http.StatusOK, treatments)
}

func (h *Handler) CreateTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, &t)
}

func (h *Handler) ListClinicServices(c echo.Context) error {
	services, err := h.svc.ListClinicServices(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if services == nil {
		services = []*ClinicService{}
	}
	return c.JSON(http.StatusOK, services)
}

func (h *Handler) CreateClinicService(c echo.Context) error {
	var s ClinicService
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateClinicService(c.Request().Context(), &s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, &s)
}

func (h *Handler) ListMutuaServices(c echo.Context) error {
	services, err := h.svc.ListMutuaServices(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if services == nil {
		services = []*ClinicService{}
	}
	return c.JSON(http.StatusOK, services)
}
