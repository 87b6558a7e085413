package handlers

import (
	"errors"
	"math"

	"github.com/mkt2maker/campustrade/middleware"
	"github.com/mkt2maker/campustrade/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{DB: db}
}

// CreateReviewRequest defines the payload for review creation. Rating is a
// pointer so a missing field can be told apart from an (invalid) zero.
type CreateReviewRequest struct {
	ListingID  string `json:"listing_id"`
	RevieweeID string `json:"reviewee_id"`
	Rating     *int   `json:"rating"`
	Comment    string `json:"comment"`
}

// UpdateReviewRequest carries the moderation whitelist; rating and comment
// are immutable after creation.
type UpdateReviewRequest struct {
	HelpfulCount     *int    `json:"helpful_count"`
	IsFlagged        *bool   `json:"is_flagged"`
	ModerationStatus *string `json:"moderation_status"`
}

// ReviewListResponse is the paginated envelope for the moderation list view.
type ReviewListResponse struct {
	Reviews []models.Review `json:"reviews"`
	models.PaginationMeta
}

// List - GET /api/reviews
//
// Unfiltered moderation view: reviews of every moderation status, paginated,
// newest first.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	page, perPage, err := parsePagination(c)
	if err != nil {
		return badRequest(c, "Invalid pagination parameters")
	}

	var total int64
	if err := h.DB.Model(&models.Review{}).Count(&total).Error; err != nil {
		return storeError(c, "Could not fetch reviews")
	}

	reviews := []models.Review{}
	if err := h.DB.Order("created_at desc").Offset((page - 1) * perPage).Limit(perPage).Find(&reviews).Error; err != nil {
		return storeError(c, "Could not fetch reviews")
	}

	return c.JSON(ReviewListResponse{
		Reviews:        reviews,
		PaginationMeta: models.NewPaginationMeta(page, perPage, total),
	})
}

// Create - POST /api/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}

	switch {
	case req.ListingID == "":
		return badRequest(c, "Missing required field: listing_id")
	case req.RevieweeID == "":
		return badRequest(c, "Missing required field: reviewee_id")
	case req.Rating == nil:
		return badRequest(c, "Missing required field: rating")
	}

	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", req.ListingID).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	var reviewee models.User
	if err := h.DB.First(&reviewee, "id = ?", req.RevieweeID).Error; err != nil {
		return notFound(c, "Reviewee not found")
	}

	if *req.Rating < 1 || *req.Rating > 5 {
		return badRequest(c, "Rating must be between 1 and 5")
	}

	review := models.Review{
		ListingID:        listing.ID,
		ReviewerID:       caller.ID,
		RevieweeID:       reviewee.ID,
		Rating:           *req.Rating,
		Comment:          req.Comment,
		ModerationStatus: models.ModerationPending,
	}

	// One review per (listing, reviewer); the store index enforces it, soft
	// deleted reviews included.
	if err := h.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return badRequest(c, "You have already reviewed this listing")
		}
		return storeError(c, "Could not create review")
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// Get - GET /api/reviews/:id
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	var review models.Review
	if err := h.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Review not found")
	}
	return c.JSON(review)
}

// Update - PATCH /api/reviews/:id
//
// Moderation status transitions are unrestricted; any status may overwrite
// any other.
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var review models.Review
	if err := h.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Review not found")
	}

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}

	if req.HelpfulCount != nil {
		if *req.HelpfulCount < 0 {
			return badRequest(c, "helpful_count must be non-negative")
		}
		review.HelpfulCount = *req.HelpfulCount
	}
	if req.IsFlagged != nil {
		review.IsFlagged = *req.IsFlagged
	}
	if req.ModerationStatus != nil {
		if !models.ValidModerationStatus(*req.ModerationStatus) {
			return badRequest(c, "Invalid moderation status")
		}
		review.ModerationStatus = *req.ModerationStatus
	}

	if err := h.DB.Save(&review).Error; err != nil {
		return storeError(c, "Could not update review")
	}

	return c.JSON(review)
}

// Delete - DELETE /api/reviews/:id
//
// Soft delete: the row stays in the store, marked Rejected and flagged, and
// disappears from the approved-only views.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	var review models.Review
	if err := h.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Review not found")
	}

	review.ModerationStatus = models.ModerationRejected
	review.IsFlagged = true

	if err := h.DB.Save(&review).Error; err != nil {
		return storeError(c, "Could not delete review")
	}

	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}

// ListForListing - GET /api/listings/:id/reviews
func (h *ReviewHandler) ListForListing(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	reviews := []models.Review{}
	if err := h.DB.Where("listing_id = ? AND moderation_status = ?", listing.ID, models.ModerationApproved).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return storeError(c, "Could not fetch reviews")
	}

	return c.JSON(fiber.Map{"reviews": reviews})
}

// ListForUser - GET /api/users/:id/reviews
//
// Approved reviews received by the user, with their average rating rounded
// to two decimals (0 when there are none).
func (h *ReviewHandler) ListForUser(c *fiber.Ctx) error {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "User not found")
	}

	reviews := []models.Review{}
	if err := h.DB.Where("reviewee_id = ? AND moderation_status = ?", user.ID, models.ModerationApproved).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return storeError(c, "Could not fetch reviews")
	}

	var averageRating float64
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		averageRating = math.Round(float64(total)/float64(len(reviews))*100) / 100
	}

	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"total_reviews":  len(reviews),
		"average_rating": averageRating,
	})
}
