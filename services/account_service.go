package services

import (
	"errors"
	"log"

	"charity-slots/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// GetMe returns the authenticated player's profile: credits, selected
// charity and their most recent spins. Clients use the nil charity to
// route new players into the onboarding flow.
func (s *AccountService) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var user models.User
	if err := s.DB.Where("external_user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var charity *models.Charity
	if user.SelectedCharityID != nil {
		var ch models.Charity
		if err := s.DB.First(&ch, "id = ?", *user.SelectedCharityID).Error; err == nil {
			charity = &ch
		} else {
			log.Printf("⚠️ [ACCOUNT] Selected charity %s missing for user %s", *user.SelectedCharityID, user.ID)
		}
	}

	var recentSpins []models.Spin
	if err := s.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(10).
		Find(&recentSpins).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{
		"user":            user,
		"selectedCharity": charity,
		"recentSpins":     recentSpins,
	})
}

// RecentWinner is the public shape of one winning spin.
type RecentWinner struct {
	SpinID      string `json:"spin_id"`
	Username    string `json:"username"`
	CharityName string `json:"charity_name"`
	AmountCents int64  `json:"amount_cents"`
	WonAt       string `json:"won_at"`
}

// GetRecentWinners returns the last five winning spins for the ticker
// on the game screen.
func (s *AccountService) GetRecentWinners(c *fiber.Ctx) error {
	var winners []RecentWinner
	err := s.DB.Model(&models.Spin{}).
		Select("spins.id AS spin_id, users.username, charities.name AS charity_name, spins.pot_amount_won_cents AS amount_cents, spins.created_at AS won_at").
		Joins("JOIN users ON users.id = spins.user_id").
		Joins("LEFT JOIN charities ON charities.id = spins.charity_id").
		Where("spins.won = ?", true).
		Order("spins.created_at DESC").
		Limit(5).
		Scan(&winners).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load winners"})
	}
	return c.JSON(winners)
}
