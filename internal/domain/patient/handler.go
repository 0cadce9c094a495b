package patient

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
	g.GET("/pacientes/", h.List)
	g.POST("/pacientes/", h.Create)
	g.GET("/pacientes/verificar/:afiliado", h.Verify)
}

func (h *Handler) List(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

type createRequest struct {
	Name            string        `json:"nombre"`
	Surname         string        `json:"apellido"`
	BirthDate       dateonly.Date `json:"fecha_nacimiento"`
	AffiliateNumber string        `json:"numero_afiliado"`
	MutuaMember     *bool         `json:"pertenece_mutua"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := &Patient{
		Name:            req.Name,
		Surname:         req.Surname,
		BirthDate:       req.BirthDate,
		AffiliateNumber: req.AffiliateNumber,
		MutuaMember:     true,
	}
	if req.MutuaMember != nil {
		p.MutuaMember = *req.MutuaMember
	}

	if err := h.svc.Create(c.Request().Context(), p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, "Número de afiliado ya registrado")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

type verifyResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"nombre"`
	Surname         string    `json:"apellido"`
	AffiliateNumber string    `json:"numero_afiliado"`
	MutuaMember     bool      `json:"pertenece_mutua"`
}

// Verify resolves an affiliate number to the patient's mutua membership.
func (h *Handler) Verify(c echo.Context) error {
	p, err := h.svc.GetByAffiliateNumber(c.Request().Context(), c.Param("afiliado"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, verifyResponse{
		ID:              p.ID,
		Name:            p.Name,
		Surname:         p.Surname,
		AffiliateNumber: p.AffiliateNumber,
		MutuaMember:     p.MutuaMember,
	})
}
