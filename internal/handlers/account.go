package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/pigeon/internal/models"
	"github.com/example/pigeon/internal/store"
	"github.com/example/pigeon/internal/utils"
)

// AccountHandler bundles dependencies for account endpoints.
type AccountHandler struct {
	users store.Users
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(users store.Users) *AccountHandler {
	return &AccountHandler{users: users}
}

type createAccountRequest struct {
	FirstName string `json:"f_name" validate:"required"`
	LastName  string `json:"l_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// CreateAccount registers a new user account.
func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil || !requestValid(req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "Required fields not filled out"})
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("create-account: hash failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	user := models.User{
		UID:          uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.Phone,
		PasswordHash: passwordHash,
	}

	if err := h.users.Create(c.UserContext(), &user); err != nil {
		log.Printf("create-account: store write failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": "Account Created Successfully!"})
}

type updateProfileRequest struct {
	UID             string `json:"uid" validate:"required"`
	FirstName       string `json:"f_name" validate:"required"`
	LastName        string `json:"l_name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfile updates name and phone fields, and the password when a new
// one is supplied and the current password verifies.
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil || !requestValid(req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "Required fields not filled out"})
	}

	user, err := h.users.Get(c.UserContext(), req.UID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Account not found"})
		}
		log.Printf("update-profile: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	fields := map[string]interface{}{
		"first_name":   req.FirstName,
		"last_name":    req.LastName,
		"phone_number": req.Phone,
		"updated_at":   time.Now(),
	}

	if req.NewPassword != "" {
		if !utils.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"data": "Incorrect Current Password"})
		}

		passwordHash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			log.Printf("update-profile: hash failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
		}
		fields["password_hash"] = passwordHash
	}

	if err := h.users.Update(c.UserContext(), req.UID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Account not found"})
		}
		log.Printf("update-profile: store write failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.JSON(fiber.Map{"data": "Profile Updated Successfully!"})
}

// FindByID returns the user stored at the given id. The password hash never
// leaves the server; models.User keeps it out of the serialized form.
func (h *AccountHandler) FindByID(c *fiber.Ctx) error {
	uid := c.Params("id")
	if uid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "No ID received"})
	}

	user, err := h.users.Get(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Account not found"})
		}
		log.Printf("find-by-id: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.JSON(fiber.Map{"data": "Account found", "user": user})
}

// FindByName returns every user whose first or last name equals name. The
// two equality queries are unioned without deduplication, so a user whose
// first and last name both match appears twice.
func (h *AccountHandler) FindByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "No Name received"})
	}

	byFirst, err := h.users.FindByFirstName(c.UserContext(), name)
	if err != nil {
		log.Printf("find-by-name: store query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	byLast, err := h.users.FindByLastName(c.UserContext(), name)
	if err != nil {
		log.Printf("find-by-name: store query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	users := make([]models.User, 0, len(byFirst)+len(byLast))
	users = append(users, byFirst...)
	users = append(users, byLast...)

	if len(users) > 0 {
		return c.JSON(fiber.Map{"data": "Match found", "users": users})
	}
	return c.JSON(fiber.Map{"data": "No Match found", "users": users})
}
