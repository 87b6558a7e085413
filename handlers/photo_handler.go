package handlers

import (
	"github.com/mkt2maker/campustrade/middleware"
	"github.com/mkt2maker/campustrade/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PhotoHandler struct {
	DB *gorm.DB
}

func NewPhotoHandler(db *gorm.DB) *PhotoHandler {
	return &PhotoHandler{DB: db}
}

// CreatePhotoRequest defines the payload for adding a photo. DisplayOrder is
// a pointer so an explicit 0 can be told apart from an omitted field.
type CreatePhotoRequest struct {
	PhotoURL     string `json:"photo_url"`
	DisplayOrder *int   `json:"display_order"`
}

type UpdatePhotoRequest struct {
	DisplayOrder *int `json:"display_order"`
}

// List - GET /api/listings/:id/photos
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	photos := []models.ListingPhoto{}
	if err := h.DB.Where("listing_id = ?", listing.ID).Order("display_order asc").Find(&photos).Error; err != nil {
		return storeError(c, "Could not fetch photos")
	}

	return c.JSON(fiber.Map{"photos": photos})
}

// Create - POST /api/listings/:id/photos
func (h *PhotoHandler) Create(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	if !listing.IsOwnedBy(middleware.Caller(c)) {
		return forbidden(c, "Only the listing owner can manage photos")
	}

	var req CreatePhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if req.PhotoURL == "" {
		return badRequest(c, "Missing required field: photo_url")
	}

	// Default display_order appends the photo to the end.
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		var count int64
		if err := h.DB.Model(&models.ListingPhoto{}).Where("listing_id = ?", listing.ID).Count(&count).Error; err != nil {
			return storeError(c, "Could not add photo")
		}
		displayOrder = int(count)
	}

	photo := models.ListingPhoto{
		ListingID:    listing.ID,
		PhotoURL:     req.PhotoURL,
		DisplayOrder: displayOrder,
	}

	if err := h.DB.Create(&photo).Error; err != nil {
		return storeError(c, "Could not add photo")
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// Update - PATCH /api/listings/:id/photos/:photoId
func (h *PhotoHandler) Update(c *fiber.Ctx) error {
	listing, photo, err := h.findListingPhoto(c)
	if err != nil {
		return notFound(c, "Listing or Photo not found")
	}

	if !listing.IsOwnedBy(middleware.Caller(c)) {
		return forbidden(c, "Only the listing owner can manage photos")
	}

	var req UpdatePhotoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}

	if req.DisplayOrder != nil {
		photo.DisplayOrder = *req.DisplayOrder
		if err := h.DB.Save(photo).Error; err != nil {
			return storeError(c, "Could not update photo")
		}
	}

	return c.JSON(photo)
}

// Delete - DELETE /api/listings/:id/photos/:photoId
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	listing, photo, err := h.findListingPhoto(c)
	if err != nil {
		return notFound(c, "Listing or Photo not found")
	}

	if !listing.IsOwnedBy(middleware.Caller(c)) {
		return forbidden(c, "Only the listing owner can manage photos")
	}

	if err := h.DB.Delete(photo).Error; err != nil {
		return storeError(c, "Could not delete photo")
	}

	return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
}

// findListingPhoto loads the listing and a photo scoped to it. A photo id
// that exists under a different listing is treated as not found.
func (h *PhotoHandler) findListingPhoto(c *fiber.Ctx) (*models.Listing, *models.ListingPhoto, error) {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return nil, nil, err
	}

	var photo models.ListingPhoto
	if err := h.DB.First(&photo, "id = ? AND listing_id = ?", c.Params("photoId"), listing.ID).Error; err != nil {
		return nil, nil, err
	}
	return &listing, &photo, nil
}
