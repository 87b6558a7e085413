package handlers

import (
	"github.com/mkt2maker/campustrade/middleware"
	"github.com/mkt2maker/campustrade/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ListingHandler struct {
	DB *gorm.DB
}

func NewListingHandler(db *gorm.DB) *ListingHandler {
	return &ListingHandler{DB: db}
}

// CreateListingRequest defines the payload for listing creation. Price is a
// pointer so a missing field can be told apart from a zero price.
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Status      string   `json:"status"`
}

// UpdateListingRequest carries the partial-update whitelist; only fields
// present in the request are applied.
type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Condition   *string  `json:"condition"`
	Status      *string  `json:"status"`
}

// ListingListResponse is the paginated envelope for listing lists.
type ListingListResponse struct {
	Listings []models.Listing `json:"listings"`
	models.PaginationMeta
}

// List - GET /api/listings
//
// Public. Only Published listings are visible; Draft and Sold never appear
// here regardless of filters.
func (h *ListingHandler) List(c *fiber.Ctx) error {
	page, perPage, err := parsePagination(c)
	if err != nil {
		return badRequest(c, "Invalid pagination parameters")
	}

	query := h.DB.Model(&models.Listing{}).Where("status = ?", models.ListingStatusPublished)

	// Filter by Category
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return storeError(c, "Could not fetch listings")
	}

	// Sort by price ascending when requested, newest first otherwise
	if c.Query("sort_by") == "price" {
		query = query.Order("price asc")
	} else {
		query = query.Order("created_at desc")
	}

	listings := []models.Listing{}
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&listings).Error; err != nil {
		return storeError(c, "Could not fetch listings")
	}

	return c.JSON(ListingListResponse{
		Listings:       listings,
		PaginationMeta: models.NewPaginationMeta(page, perPage, total),
	})
}

// Create - POST /api/listings
//
// The route already gates on role Seller; the caller's role is re-checked
// here against the freshly resolved user.
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	if !caller.CanSell() {
		return forbidden(c, "User is not authorized to sell")
	}

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}

	switch {
	case req.Title == "":
		return badRequest(c, "Missing required field: title")
	case req.Price == nil:
		return badRequest(c, "Missing required field: price")
	case req.Category == "":
		return badRequest(c, "Missing required field: category")
	case req.Condition == "":
		return badRequest(c, "Missing required field: condition")
	}

	if *req.Price < 0 {
		return badRequest(c, "Price must be non-negative")
	}
	if !models.ValidListingCategory(req.Category) {
		return badRequest(c, "Invalid category")
	}
	if !models.ValidListingCondition(req.Condition) {
		return badRequest(c, "Invalid condition")
	}

	status := models.ListingStatusDraft
	if req.Status != "" {
		if !models.ValidListingStatus(req.Status) {
			return badRequest(c, "Invalid status")
		}
		status = req.Status
	}

	listing := models.Listing{
		SellerID:    caller.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Status:      status,
	}

	if err := h.DB.Create(&listing).Error; err != nil {
		return storeError(c, "Could not create listing")
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// Get - GET /api/listings/:id
//
// Public and status-blind: unlike the list view, Draft and Sold listings are
// returned by id.
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}
	return c.JSON(listing)
}

// Update - PATCH /api/listings/:id
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	if !listing.IsOwnedBy(middleware.Caller(c)) {
		return forbidden(c, "Only the listing owner can update this listing")
	}

	var req UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}

	if req.Price != nil && *req.Price < 0 {
		return badRequest(c, "Price must be non-negative")
	}
	if req.Category != nil && !models.ValidListingCategory(*req.Category) {
		return badRequest(c, "Invalid category")
	}
	if req.Condition != nil && !models.ValidListingCondition(*req.Condition) {
		return badRequest(c, "Invalid condition")
	}
	if req.Status != nil && !models.ValidListingStatus(*req.Status) {
		return badRequest(c, "Invalid status")
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Category != nil {
		listing.Category = *req.Category
	}
	if req.Condition != nil {
		listing.Condition = *req.Condition
	}
	if req.Status != nil {
		listing.Status = *req.Status
	}

	if err := h.DB.Save(&listing).Error; err != nil {
		return storeError(c, "Could not update listing")
	}

	return c.JSON(listing)
}

// Delete - DELETE /api/listings/:id
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	if !listing.IsOwnedBy(middleware.Caller(c)) {
		return forbidden(c, "Only the listing owner can delete this listing")
	}

	if err := h.DB.Delete(&listing).Error; err != nil {
		return storeError(c, "Could not delete listing")
	}

	return c.JSON(fiber.Map{"message": "Listing deleted successfully"})
}
