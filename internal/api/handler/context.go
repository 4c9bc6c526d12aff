package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestion-esports/account-system/internal/core/domain"
)

// ctxSession extracts the identity claims the Auth middleware injected. A
// missing user id means the middleware never ran on this route; reject
// before touching the service.
func ctxSession(c echo.Context) (userID, sessionID string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	sessionID, _ = c.Get("session_id").(string)
	if sessionID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing session identity")
	}

	return userID, sessionID, nil
}

// ctxRole returns the caller's role claim, defaulting to a plain user.
func ctxRole(c echo.Context) domain.Role {
	role, _ := c.Get("role").(string)
	return domain.RoleFromString(role)
}
