package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tiffin-service/internal/api/dto"
	"github.com/spec-kit/tiffin-service/internal/service"
)

// AuthHandler exposes signup, login and the password-reset flow.
type AuthHandler struct {
	auth       *service.AuthService
	cookieName string
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{auth: authService, cookieName: cookieName}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	account, err := h.auth.RegisterUser(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
			"role":  account.Role,
		},
	})
}

// RegisterVendor handles POST /auth/vendor-register.
func (h *AuthHandler) RegisterVendor(c *fiber.Ctx) error {
	var req dto.VendorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.KitchenName == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password, kitchen_name required")
	}

	account, vendor, err := h.auth.RegisterVendor(c.Context(), req.Name, req.Email, req.Password, req.KitchenName, req.City)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":     account.ID,
			"email":  account.Email,
			"role":   account.Role,
			"vendor": fiber.Map{"id": vendor.ID, "name": vendor.Name, "status": vendor.Status},
		},
	})
}

// Login handles POST /auth/login. On success the session id is set as a
// cookie so the route guard can resolve the session on page navigations.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    result.SessionID,
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{
			Token:     result.Token,
			Role:      string(result.Account.Role),
			Email:     result.Account.Email,
			Username:  result.Account.Name,
			SessionID: result.SessionID,
			ExpiresAt: result.ExpiresAt,
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(h.cookieName)
	if sessionID == "" {
		sessionID = c.Get("X-Session-ID")
	}
	if sessionID != "" {
		if err := h.auth.Logout(c.Context(), sessionID); err != nil {
			return err
		}
	}
	c.ClearCookie(h.cookieName)
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	// The token would be mailed out of band; respond identically whether
	// or not the email exists so the endpoint cannot be used to probe.
	if _, err := h.auth.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return c.JSON(fiber.Map{"data": fiber.Map{"requested": true}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"requested": true}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new_password required")
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}
