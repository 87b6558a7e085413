package config

import (
	"log"

	"github.com/mkt2maker/campustrade/models"
	"github.com/mkt2maker/campustrade/utils"

	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Name:     "Demo Seller",
			Email:    "seller@example.com",
			Password: password,
			Role:     models.RoleSeller,
			Verified: true,
		},
		{
			Name:     "Demo Buyer",
			Email:    "buyer@example.com",
			Password: password,
			Role:     models.RoleBuyer,
			Verified: true,
		},
		{
			Name:     "Demo Both",
			Email:    "both@example.com",
			Password: password,
			Role:     models.RoleBoth,
		},
	}

	for _, user := range users {
		var existingUser models.User
		if err := db.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Email, err)
				} else {
					log.Printf("User seeded: %s (ID: %s)", user.Email, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Email)
		}
	}

	log.Println("User seeding complete.")
}

func SeedListings(db *gorm.DB) {
	log.Println("Seeding listings...")

	var seller models.User
	if err := db.Where("email = ?", "seller@example.com").First(&seller).Error; err != nil {
		log.Printf("Cannot seed listings without the demo seller: %v", err)
		return
	}

	listings := []models.Listing{
		{
			SellerID:    seller.ID,
			Title:       "Intro to Algorithms, 4th Edition",
			Description: "Lightly used, no highlights.",
			Price:       45,
			Category:    "Textbooks",
			Condition:   "Good",
			Status:      models.ListingStatusPublished,
		},
		{
			SellerID:    seller.ID,
			Title:       "Mini fridge",
			Description: "Fits under a dorm desk.",
			Price:       60,
			Category:    "Dorm Supplies",
			Condition:   "Fair",
			Status:      models.ListingStatusPublished,
		},
	}

	for _, listing := range listings {
		var existing models.Listing
		if err := db.Where("seller_id = ? AND title = ?", listing.SellerID, listing.Title).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&listing).Error; err != nil {
					log.Printf("Failed to seed listing %q: %v", listing.Title, err)
				}
			}
		}
	}

	log.Println("Listing seeding complete.")
}
