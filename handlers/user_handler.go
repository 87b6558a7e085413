package handlers

import (
	"errors"

	"github.com/mkt2maker/campustrade/models"
	"github.com/mkt2maker/campustrade/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// Register - POST /api/users
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}

	switch {
	case req.Name == "":
		return badRequest(c, "Missing required field: name")
	case req.Email == "":
		return badRequest(c, "Missing required field: email")
	case req.Password == "":
		return badRequest(c, "Missing required field: password")
	case req.Role == "":
		return badRequest(c, "Missing required field: role")
	}

	if !models.ValidRole(req.Role) {
		return badRequest(c, "Invalid role. Must be Buyer, Seller, or Both")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return storeError(c, "Could not hash password")
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
		Verified: req.Verified,
	}

	// Email uniqueness is enforced by the store index; a concurrent
	// registration loses the race here rather than creating a duplicate.
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return badRequest(c, "Email already registered")
		}
		return storeError(c, "Could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// GetUser - GET /api/users/:id
//
// Any authenticated caller may view any profile.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "User not found")
	}
	return c.JSON(user)
}
