package handlers

import (
	"errors"
	"time"

	"github.com/mkt2maker/campustrade/middleware"
	"github.com/mkt2maker/campustrade/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ThreadHandler struct {
	DB *gorm.DB
}

func NewThreadHandler(db *gorm.DB) *ThreadHandler {
	return &ThreadHandler{DB: db}
}

// ThreadListResponse is the paginated envelope for the caller's threads.
type ThreadListResponse struct {
	Threads []models.ChatThread `json:"threads"`
	models.PaginationMeta
}

// ListForListing - GET /api/listings/:id/threads
//
// The listing owner sees every thread opened on their listing.
func (h *ThreadHandler) ListForListing(c *fiber.Ctx) error {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	if !listing.IsOwnedBy(middleware.Caller(c)) {
		return forbidden(c, "Only the listing owner can view these threads")
	}

	threads := []models.ChatThread{}
	if err := h.DB.Where("listing_id = ?", listing.ID).Order("last_activity_time desc").Find(&threads).Error; err != nil {
		return storeError(c, "Could not fetch threads")
	}

	return c.JSON(fiber.Map{"threads": threads})
}

// CreateForListing - POST /api/listings/:id/threads
//
// The caller becomes the buyer; the seller is derived from the listing. A
// duplicate (listing, buyer) pair is rejected with the existing thread in
// the response.
func (h *ThreadHandler) CreateForListing(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Listing not found")
	}

	var existing models.ChatThread
	err := h.DB.Where("listing_id = ? AND buyer_id = ?", listing.ID, caller.ID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Thread already exists",
			"thread": existing,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError(c, "Could not create thread")
	}

	thread := models.ChatThread{
		ListingID: listing.ID,
		BuyerID:   caller.ID,
		SellerID:  listing.SellerID,
	}

	if err := h.DB.Create(&thread).Error; err != nil {
		// A concurrent creation can slip past the check above; the unique
		// index decides, and the loser gets the same duplicate response.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if lookupErr := h.DB.Where("listing_id = ? AND buyer_id = ?", listing.ID, caller.ID).First(&existing).Error; lookupErr == nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":  "Thread already exists",
					"thread": existing,
				})
			}
		}
		return storeError(c, "Could not create thread")
	}

	return c.Status(fiber.StatusCreated).JSON(thread)
}

// GetForListing - GET /api/listings/:id/threads/:threadId
func (h *ThreadHandler) GetForListing(c *fiber.Ctx) error {
	thread, err := h.findListingThread(c)
	if err != nil {
		return notFound(c, "Listing or Thread not found")
	}

	if !thread.HasParticipant(middleware.Caller(c)) {
		return forbidden(c, "Only thread participants can access this thread")
	}

	return c.JSON(thread)
}

// UpdateForListing - PATCH /api/listings/:id/threads/:threadId
//
// The only observable effect is bumping last_activity_time.
func (h *ThreadHandler) UpdateForListing(c *fiber.Ctx) error {
	thread, err := h.findListingThread(c)
	if err != nil {
		return notFound(c, "Listing or Thread not found")
	}

	if !thread.HasParticipant(middleware.Caller(c)) {
		return forbidden(c, "Only thread participants can access this thread")
	}

	thread.LastActivityTime = time.Now()
	if err := h.DB.Save(thread).Error; err != nil {
		return storeError(c, "Could not update thread")
	}

	return c.JSON(thread)
}

// ListMine - GET /api/threads
//
// Threads where the caller is buyer or seller, most recent activity first.
func (h *ThreadHandler) ListMine(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	page, perPage, err := parsePagination(c)
	if err != nil {
		return badRequest(c, "Invalid pagination parameters")
	}

	query := h.DB.Model(&models.ChatThread{}).Where("buyer_id = ? OR seller_id = ?", caller.ID, caller.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return storeError(c, "Could not fetch threads")
	}

	threads := []models.ChatThread{}
	if err := query.Order("last_activity_time desc").Offset((page - 1) * perPage).Limit(perPage).Find(&threads).Error; err != nil {
		return storeError(c, "Could not fetch threads")
	}

	return c.JSON(ThreadListResponse{
		Threads:        threads,
		PaginationMeta: models.NewPaginationMeta(page, perPage, total),
	})
}

// GetMine - GET /api/threads/:id
func (h *ThreadHandler) GetMine(c *fiber.Ctx) error {
	var thread models.ChatThread
	if err := h.DB.First(&thread, "id = ?", c.Params("id")).Error; err != nil {
		return notFound(c, "Thread not found")
	}

	if !thread.HasParticipant(middleware.Caller(c)) {
		return forbidden(c, "Only thread participants can access this thread")
	}

	return c.JSON(thread)
}

func (h *ThreadHandler) findListingThread(c *fiber.Ctx) (*models.ChatThread, error) {
	var listing models.Listing
	if err := h.DB.First(&listing, "id = ?", c.Params("id")).Error; err != nil {
		return nil, err
	}

	var thread models.ChatThread
	if err := h.DB.First(&thread, "id = ? AND listing_id = ?", c.Params("threadId"), listing.ID).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}
