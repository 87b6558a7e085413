package handlers

import (
	"github.com/mkt2maker/campustrade/config"
	"github.com/mkt2maker/campustrade/middleware"
	"github.com/mkt2maker/campustrade/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegisterRoutes wires every API endpoint under /api.
func RegisterRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authRequired := middleware.Protected(db, cfg)
	sellerOnly := middleware.RequireRole(db, cfg, models.RoleSeller)
	buyerOnly := middleware.RequireRole(db, cfg, models.RoleBuyer)

	authHandler := NewAuthHandler(db, cfg)
	userHandler := NewUserHandler(db)
	listingHandler := NewListingHandler(db)
	photoHandler := NewPhotoHandler(db)
	threadHandler := NewThreadHandler(db)
	reviewHandler := NewReviewHandler(db)

	api := app.Group("/api")

	// Users
	api.Post("/users", userHandler.Register)
	api.Get("/users/:id/reviews", reviewHandler.ListForUser)
	api.Get("/users/:id", authRequired, userHandler.GetUser)

	// Sessions
	api.Post("/sessions", authHandler.Login)
	api.Delete("/sessions", authRequired, authHandler.Logout)

	// Listings
	api.Get("/listings", listingHandler.List)
	api.Post("/listings", sellerOnly, listingHandler.Create)
	api.Get("/listings/:id", listingHandler.Get)
	api.Patch("/listings/:id", authRequired, listingHandler.Update)
	api.Delete("/listings/:id", authRequired, listingHandler.Delete)

	// Listing photos
	api.Get("/listings/:id/photos", photoHandler.List)
	api.Post("/listings/:id/photos", authRequired, photoHandler.Create)
	api.Patch("/listings/:id/photos/:photoId", authRequired, photoHandler.Update)
	api.Delete("/listings/:id/photos/:photoId", authRequired, photoHandler.Delete)

	// Chat threads
	api.Get("/listings/:id/threads", authRequired, threadHandler.ListForListing)
	api.Post("/listings/:id/threads", buyerOnly, threadHandler.CreateForListing)
	api.Get("/listings/:id/threads/:threadId", authRequired, threadHandler.GetForListing)
	api.Patch("/listings/:id/threads/:threadId", authRequired, threadHandler.UpdateForListing)
	api.Get("/threads", authRequired, threadHandler.ListMine)
	api.Get("/threads/:id", authRequired, threadHandler.GetMine)

	// Reviews
	api.Get("/listings/:id/reviews", reviewHandler.ListForListing)
	api.Get("/reviews", reviewHandler.List)
	api.Post("/reviews", authRequired, reviewHandler.Create)
	api.Get("/reviews/:id", reviewHandler.Get)
	api.Patch("/reviews/:id", authRequired, reviewHandler.Update)
	api.Delete("/reviews/:id", authRequired, reviewHandler.Delete)
}
