package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/pigeon/internal/config"
	"github.com/example/pigeon/internal/middleware"
	"github.com/example/pigeon/internal/store"
	"github.com/example/pigeon/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	users store.Users
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users store.Users, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by phone number and password and issues a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || !requestValid(req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "Required fields not filled out"})
	}

	user, err := h.users.FindByPhone(c.UserContext(), req.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"data": "Invalid Credentials"})
		}
		log.Printf("login: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"data": "Invalid Credentials"})
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.UID, h.cfg.TokenExpires)
	if err != nil {
		log.Printf("login: token generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.JSON(fiber.Map{"data": "Login Successful!", "token": token, "user": user})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.users.Get(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Account not found"})
		}
		log.Printf("me: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.JSON(fiber.Map{"data": "Account found", "user": user})
}
