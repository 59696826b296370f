package services

import (
	"errors"
	"log"

	"charity-slots/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credit bundles offered in the purchase modal. Prices are in cents.
var creditBundles = map[int]int64{
	10:  250,
	50:  1000,
	100: 1800,
}

type PurchaseService struct {
	DB *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{DB: db}
}

// PurchaseCredits records a purchase intent. Payment processing is not
// integrated yet, so the purchase stays pending and no credits are
// granted.
func (s *PurchaseService) PurchaseCredits(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		Credits int `json:"credits"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	price, ok := creditBundles[req.Credits]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown credit bundle"})
	}

	var user models.User
	if err := s.DB.Where("external_user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	purchase := models.CreditPurchase{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Credits:     req.Credits,
		AmountCents: price,
		Status:      models.PurchaseStatusPending,
	}
	if err := s.DB.Create(&purchase).Error; err != nil {
		log.Printf("DB Error creating credit purchase: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record purchase"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"purchase": purchase,
		"message":  "Credit purchases are coming soon — no payment was taken",
	})
}
