package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestion-esports/account-system/internal/api/metrics"
	"github.com/gestion-esports/account-system/internal/core/domain"
	"github.com/gestion-esports/account-system/internal/core/ports"
)

const refreshTokenHeader = "X-Refresh-Token"

type AuthHandler struct {
	accounts ports.AccountService
}

func NewAuthHandler(accounts ports.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register creates a new account and logs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.RoleFromString(req.Role)
	}

	creds, err := h.accounts.Register(c.Request().Context(), req.Email, req.Password, req.Username, role)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()

	setCredentialHeaders(c, creds)
	return c.JSON(http.StatusCreated, toUserResponse(creds.User))
}

// Login authenticates an account. The bearer pair travels in response
// headers; the body stays a plain user document.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	creds, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	setCredentialHeaders(c, creds)
	return c.JSON(http.StatusOK, toUserResponse(creds.User))
}

// Logout revokes the session named by the bearer.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, _ := c.Get("session_id").(string)
	if err := h.accounts.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me resolves the current session to its account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, sessionID, err := ctxSession(c)
	if err != nil {
		metrics.SessionChecksTotal.WithLabelValues("invalid").Inc()
		return err
	}

	user, err := h.accounts.CurrentUser(c.Request().Context(), userID, sessionID)
	if err != nil {
		metrics.SessionChecksTotal.WithLabelValues("expired").Inc()
		return err
	}
	metrics.SessionChecksTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ForgotPassword starts a password reset. The answer is the same whether
// or not the address exists.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "reset mail sent if the account exists"})
}

// ResetPassword redeems a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// ResendVerification issues a fresh verification mail.
//
// @Summary      Resend verification mail
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendVerificationRequest  true  "Account identifier"
// @Success      200   {object}  messageResponse
// @Router       /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accounts.ResendVerification(c.Request().Context(), req.Identifier); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "verification mail sent if the account exists"})
}

func setCredentialHeaders(c echo.Context, creds *domain.Credentials) {
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+creds.AuthToken)
	c.Response().Header().Set(refreshTokenHeader, creds.RefreshToken)
}
