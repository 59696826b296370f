package services

import (
	"errors"
	"log"
	"path/filepath"

	"charity-slots/models"
	"charity-slots/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CharityService struct {
	DB *gorm.DB
}

func NewCharityService(db *gorm.DB) *CharityService {
	return &CharityService{DB: db}
}

// ListCharities returns the approved catalog, the set players choose
// from during onboarding.
func (s *CharityService) ListCharities(c *fiber.Ctx) error {
	var charities []models.Charity
	if err := s.DB.Where("approved = ?", true).Order("name ASC").Find(&charities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load charities"})
	}
	return c.JSON(charities)
}

// GetCharityBySlug resolves one catalog entry for a public detail page.
func (s *CharityService) GetCharityBySlug(c *fiber.Ctx) error {
	var charity models.Charity
	err := s.DB.Where("slug = ? AND approved = ?", c.Params("slug"), true).First(&charity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Charity not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(charity)
}

// SelectCharity completes (or changes) the player's onboarding choice.
// Winnings from that point on are directed to the chosen charity.
func (s *CharityService) SelectCharity(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req struct {
		CharityID string `json:"charityId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if _, err := uuid.Parse(req.CharityID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid charity ID"})
	}

	var charity models.Charity
	if err := s.DB.Where("id = ? AND approved = ?", req.CharityID, true).First(&charity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Charity not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	res := s.DB.Model(&models.User{}).
		Where("external_user_id = ?", userID).
		Update("selected_charity_id", charity.ID)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save selection"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	log.Printf("✅ [CHARITY] User %s selected charity %s (%s)", userID, charity.ID, charity.Name)
	return c.JSON(fiber.Map{"selectedCharity": charity})
}

// CreateCharity adds a catalog entry (admin only). Accepts multipart
// form data with an optional logo file uploaded to R2.
func (s *CharityService) CreateCharity(c *fiber.Ctx) error {
	if !hasRole(c, "admin") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin role required"})
	}

	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Charity name is required"})
	}

	charity := models.Charity{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: c.FormValue("description"),
		Approved:    c.FormValue("approved") == "true",
	}

	if logoFile, err := c.FormFile("logo"); err == nil && logoFile.Size > 0 {
		ext := filepath.Ext(logoFile.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := "logos/" + charity.Slug + "-" + charity.ID[:8] + ext
		logoURL, err := utils.UploadFileToR2(logoFile, key)
		if err != nil {
			log.Printf("❌ [CHARITY] Logo upload failed for %q: %v", name, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload logo"})
		}
		charity.LogoURL = logoURL
		charity.LogoKey = key
	}

	if err := s.DB.Create(&charity).Error; err != nil {
		log.Printf("DB Error creating charity: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create charity"})
	}

	return c.Status(fiber.StatusCreated).JSON(charity)
}

// UpdateCharity edits a catalog entry, including the approval flag
// (admin only).
func (s *CharityService) UpdateCharity(c *fiber.Ctx) error {
	if !hasRole(c, "admin") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin role required"})
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid charity ID"})
	}

	var charity models.Charity
	if err := s.DB.First(&charity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Charity not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Approved    *bool   `json:"approved"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil && *req.Name != "" {
		charity.Name = *req.Name
		charity.Slug = slug.Make(*req.Name)
	}
	if req.Description != nil {
		charity.Description = *req.Description
	}
	if req.Approved != nil {
		charity.Approved = *req.Approved
	}

	if err := s.DB.Save(&charity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update charity"})
	}

	return c.JSON(charity)
}

// UpdateCharityLogo replaces a charity's logo (admin only, multipart).
// The previous object is deleted from R2 once the new one is stored.
func (s *CharityService) UpdateCharityLogo(c *fiber.Ctx) error {
	if !hasRole(c, "admin") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin role required"})
	}

	id := c.Params("id")
	var charity models.Charity
	if err := s.DB.First(&charity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Charity not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	logoFile, err := c.FormFile("logo")
	if err != nil || logoFile.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Logo file is required"})
	}

	ext := filepath.Ext(logoFile.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "logos/" + charity.Slug + "-" + uuid.NewString()[:8] + ext
	logoURL, err := utils.UploadFileToR2(logoFile, key)
	if err != nil {
		log.Printf("❌ [CHARITY] Logo upload failed for %s: %v", charity.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload logo"})
	}

	oldKey := charity.LogoKey
	charity.LogoURL = logoURL
	charity.LogoKey = key
	if err := s.DB.Save(&charity).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update charity"})
	}

	if oldKey != "" {
		if err := utils.DeleteFileFromR2(oldKey); err != nil {
			log.Printf("⚠️ [CHARITY] Failed to delete old logo %s: %v", oldKey, err)
		}
	}

	return c.JSON(charity)
}

// hasRole checks the gateway-provided role list on the request context.
func hasRole(c *fiber.Ctx, role string) bool {
	roles, ok := c.Locals("user_roles").([]string)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
