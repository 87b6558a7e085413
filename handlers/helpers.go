package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

var errInvalidPagination = errors.New("invalid pagination parameters")

// parsePagination reads page and per_page query parameters. Missing values
// fall back to the defaults; present but non-numeric or non-positive values
// are a validation error.
func parsePagination(c *fiber.Ctx) (page, perPage int, err error) {
	page, perPage = defaultPage, defaultPerPage

	if v := c.Query("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, errInvalidPagination
		}
	}
	if v := c.Query("per_page"); v != "" {
		perPage, err = strconv.Atoi(v)
		if err != nil || perPage < 1 {
			return 0, 0, errInvalidPagination
		}
	}
	return page, perPage, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": message})
}

func storeError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
