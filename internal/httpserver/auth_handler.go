package httpserver

import (
	"net/http"

	"erp-be/internal/user"
	"erp-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Users user.Service
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "email, name and password are required"})
	}

	token, u, err := h.Users.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	setAccessCookie(c, token)
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	token, u, err := h.Users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Status: "error", Message: "invalid email or password"})
	}

	setAccessCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := utils.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}

	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func setAccessCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
