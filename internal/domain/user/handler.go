package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mutua/mutua/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	issuer *auth.Issuer
}

func NewHandler(svc *Service, issuer *auth.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

// RegisterRoutes wires the login route onto the public group and /users/me
// onto the bearer-protected group.
func (h *Handler) RegisterRoutes(public, protected *echo.Group) {
	public.POST("/token", h.Login)
	protected.GET("/users/me", h.Me)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges form credentials for a bearer token.
func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	u, err := h.svc.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.issuer.Issue(u.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me returns the authenticated user's record.
func (h *Handler) Me(c echo.Context) error {
	username := auth.UsernameFromContext(c.Request().Context())
	u, err := h.svc.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Credenciales inválidas")
	}
	return c.JSON(http.StatusOK, u)
}
