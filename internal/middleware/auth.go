package middleware

import (
	"net/http"
	"strings"

	"erp-be/internal/user"
	"erp-be/internal/utils"

	"github.com/labstack/echo/v4"
)

// ExtractAccessToken reads the access token from the cookie first,
// then falls back to the Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// AuthMiddleware parses the JWT and puts the user identity into the
// request context. Requests without a valid token are rejected.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := ExtractAccessToken(c.Request())
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		ctx := utils.SetUserContext(c.Request().Context(), claims.UserID, claims.Email)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
