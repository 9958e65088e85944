package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/azulroute/tour-booking-api/internal/repository"
	"github.com/azulroute/tour-booking-api/internal/utils"
)

// AdminAuthHandler signs operators into the back office. There is no
// self-registration: only addresses present in authorized_admins can log in.
type AdminAuthHandler struct {
	Admins     *repository.AdminRepo
	JWTSecret  string
	TTLMin     int
	BcryptCost int
}

func NewAdminAuthHandler(admins *repository.AdminRepo, jwtSecret string, ttlMin, bcryptCost int) *AdminAuthHandler {
	if admins == nil {
		panic("nil admin repository passed to NewAdminAuthHandler")
	}
	return &AdminAuthHandler{Admins: admins, JWTSecret: jwtSecret, TTLMin: ttlMin, BcryptCost: bcryptCost}
}

// Login handles POST /api/admin/login. Unknown address and wrong password
// produce the same response so the endpoint cannot be used to enumerate
// admin accounts.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.TrimSpace(strings.ToLower(body.Email))
	if email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	admin, err := h.Admins.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := utils.NewAdminToken(h.JWTSecret, admin.Email, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token.Token,
		"expires_at":   token.Exp,
	})
}

// ChangePassword handles PUT /api/admin/password. The route sits inside the
// JWT group, so the admin email comes from the validated token; the current
// password is still required so a leaked token alone cannot rotate it.
func (h *AdminAuthHandler) ChangePassword(c echo.Context) error {
	email, _ := c.Get("admin_email").(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current and new passwords are required"})
	}
	if len(body.NewPassword) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password must be at least 8 characters"})
	}

	ctx := c.Request().Context()
	admin, err := h.Admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, body.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	hash, err := utils.HashPassword(body.NewPassword, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
	}
	if err := h.Admins.UpdatePassword(ctx, email, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
