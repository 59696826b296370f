package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"charity-slots/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PotService struct {
	DB *gorm.DB
}

func NewPotService(db *gorm.DB) *PotService {
	return &PotService{DB: db}
}

// GetPot returns the current shared pot.
func (s *PotService) GetPot(c *fiber.Ctx) error {
	var pot models.GlobalPot
	if err := s.DB.First(&pot, models.GlobalPotID).Error; err != nil {
		log.Printf("❌ [POT] Failed to load global pot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Global state error"})
	}
	return c.JSON(fiber.Map{
		"potTotalCents": pot.PotTotalCents,
		"lastUpdated":   pot.UpdatedAt,
	})
}

// StreamPotSSE streams pot changes to the game screen so every player
// watches the same number climb (and reset) live. The spin path does
// not depend on this stream — it only produces the row updates the
// stream observes.
func (s *PotService) StreamPotSSE(c *fiber.Ctx) error {
	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastSeen time.Time

		// Send the current value immediately so clients don't start blank
		var pot models.GlobalPot
		if err := s.DB.First(&pot, models.GlobalPotID).Error; err == nil {
			lastSeen = pot.UpdatedAt
			payload, _ := json.Marshal(fiber.Map{"potTotalCents": pot.PotTotalCents})
			fmt.Fprintf(w, "event: pot\ndata: %s\n\n", payload)
		} else {
			log.Printf("SSE pot init error: %v", err)
			w.WriteString(":\n\n")
		}
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				var pot models.GlobalPot
				if err := s.DB.First(&pot, models.GlobalPotID).Error; err != nil {
					log.Printf("SSE pot query error: %v", err)
					continue
				}
				if !pot.UpdatedAt.After(lastSeen) {
					continue
				}
				lastSeen = pot.UpdatedAt

				payload, _ := json.Marshal(fiber.Map{"potTotalCents": pot.PotTotalCents})
				fmt.Fprintf(w, "event: pot\ndata: %s\n\n", payload)

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
