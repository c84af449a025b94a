package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tienduca/storefront-api/internal/application/auth"
	"github.com/tienduca/storefront-api/internal/application/dto"
)

// AuthHandler maneja el flujo de autenticación en dos fases.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login (fase 1): credenciales y envío de código 2FA
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Correo y contraseña"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Verify2FA godoc
// @Summary      Login (fase 2): verificación del código y emisión de token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.Verify2FARequest  true  "Usuario y código"
// @Success      200   {object}  dto.Verify2FAResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-2fa [post]
func (h *AuthHandler) Verify2FA(c *fiber.Ctx) error {
	var in dto.Verify2FARequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Verify2FA(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ForgotUsername godoc
// @Summary      Recordatorio de usuario por correo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  true  "Correo"
// @Success      200   {object}  dto.MensajeResponse
// @Router       /api/auth/forgot-username [post]
func (h *AuthHandler) ForgotUsername(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ForgotUsername(c.Context(), in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitud de restablecimiento de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmailRequest  true  "Correo"
// @Success      200   {object}  dto.MensajeResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.EmailRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ForgotPassword(c.Context(), in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "Token y nueva contraseña"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ResetPassword(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyToken godoc
// @Summary      Verificar un token de sesión o de recuperación
// @Tags         auth
// @Produce      json
// @Param        token  path  string  true  "Token"
// @Success      200  {object}  dto.VerifyTokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/verify-token/{token} [get]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	out, err := h.uc.VerifyToken(c.Context(), c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
