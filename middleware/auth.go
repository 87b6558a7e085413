package middleware

import (
	"errors"
	"strings"

	"github.com/mkt2maker/campustrade/config"
	"github.com/mkt2maker/campustrade/models"
	"github.com/mkt2maker/campustrade/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CallerKey is the Locals key under which the resolved caller is stored.
const CallerKey = "current_user"

var errNoCredential = errors.New("missing or malformed authorization header")

// Protected requires a valid bearer token. The resolved caller is stored in
// Locals so handlers receive it as an explicit value.
func Protected(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveCaller(c, db, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		c.Locals(CallerKey, user)
		return c.Next()
	}
}

// RequireRole requires a valid bearer token and one of the given roles.
// A caller with role Both satisfies any role requirement.
func RequireRole(db *gorm.DB, cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolveCaller(c, db, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if user.Role != models.RoleBoth && !roleAllowed(roles, user.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		c.Locals(CallerKey, user)
		return c.Next()
	}
}

// Caller returns the user resolved by Protected or RequireRole, or nil on
// public routes.
func Caller(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CallerKey).(*models.User)
	return user
}

func resolveCaller(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (*models.User, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return nil, errNoCredential
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	userID, err := utils.ParseToken(tokenString, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	// The token may outlive the account it was issued for.
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func roleAllowed(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
