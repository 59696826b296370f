package services

import (
	"encoding/json"
	"errors"
	"log"

	"charity-slots/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CentsPerCredit is the fixed exchange rate a losing stake feeds the
// pot at: each credit staked adds 25¢.
const CentsPerCredit = 25

var (
	ErrInvalidBet          = errors.New("bet must be a positive number of credits")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUserNotFound        = errors.New("user not found")
	ErrPotUnavailable      = errors.New("global pot row missing")
)

type SpinService struct {
	DB     *gorm.DB
	Engine *SlotEngine
}

func NewSpinService(db *gorm.DB, engine *SlotEngine) *SpinService {
	return &SpinService{DB: db, Engine: engine}
}

// ensureStake validates the stake against the player's balance.
func ensureStake(credits, bet int) error {
	if bet <= 0 {
		return ErrInvalidBet
	}
	if credits < bet {
		return ErrInsufficientCredits
	}
	return nil
}

// spinSettlement is the pure arithmetic outcome of one spin.
type spinSettlement struct {
	NewCredits  int
	NewPotCents int64
	PayoutCents int64
}

// settleSpin computes balances for a spin whose outcome is already
// decided. A win takes the whole pot; a loss feeds the stake into it.
func settleSpin(credits, bet int, potCents int64, won bool) spinSettlement {
	s := spinSettlement{NewCredits: credits - bet}
	if won {
		s.PayoutCents = potCents
		s.NewPotCents = 0
	} else {
		s.NewPotCents = potCents + int64(bet)*CentsPerCredit
	}
	return s
}

// spinOutcome is everything one spin writes: the new balances and the
// rows to insert. Computed in full before any row is touched.
type spinOutcome struct {
	Spin        models.Spin
	Donation    *models.Donation
	NewCredits  int
	NewPotCents int64
}

// runSpin applies the whole ledger for a decided grid. It validates
// the stake, settles the balances and builds the Spin and Donation
// rows; the caller persists them. A rejected stake returns the error
// and a zero outcome — nothing to write. The charity is captured on
// winning spins only, and a Donation exists exactly when the spin won
// and the player had a charity selected.
func runSpin(user models.User, potCents int64, bet int, grid Grid, won bool) (spinOutcome, error) {
	if err := ensureStake(user.Credits, bet); err != nil {
		return spinOutcome{}, err
	}

	settlement := settleSpin(user.Credits, bet, potCents, won)

	gridJSON, err := json.Marshal(grid)
	if err != nil {
		return spinOutcome{}, err
	}

	spin := models.Spin{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		BetAmount:         bet,
		ResultGrid:        gridJSON,
		Won:               won,
		PotAmountWonCents: settlement.PayoutCents,
	}

	var donation *models.Donation
	if won {
		spin.CharityID = user.SelectedCharityID
		if user.SelectedCharityID != nil {
			donation = &models.Donation{
				ID:          uuid.NewString(),
				UserID:      user.ID,
				CharityID:   *user.SelectedCharityID,
				AmountCents: settlement.PayoutCents,
			}
		}
	}

	return spinOutcome{
		Spin:        spin,
		Donation:    donation,
		NewCredits:  settlement.NewCredits,
		NewPotCents: settlement.NewPotCents,
	}, nil
}

// PlaySpin executes one spin for the authenticated user.
//
// The whole read-modify-write — pot read under FOR UPDATE, credit
// debit, pot update, spin insert, donation insert — runs in a single
// transaction, so concurrent spins serialize on the pot row and a
// winning spin can never commit without its donation.
func (s *SpinService) PlaySpin(c *fiber.Ctx) error {
	actingUserID := c.Locals("user_id").(string)

	var req struct {
		UserID    string `json:"userId"`
		BetAmount int    `json:"betAmount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.BetAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	// Identity comes from the gateway context. A body userId is
	// tolerated for older clients but must agree with it.
	if req.UserID != "" && req.UserID != actingUserID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId does not match authenticated user"})
	}

	var (
		spin       *models.Spin
		grid       Grid
		newCredits int
		newPot     int64
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the pot row first: every concurrent spin serializes here.
		var pot models.GlobalPot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pot, models.GlobalPotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPotUnavailable
			}
			return err
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_user_id = ?", actingUserID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		resultGrid, won := s.Engine.Generate()

		outcome, err := runSpin(user, pot.PotTotalCents, req.BetAmount, resultGrid, won)
		if err != nil {
			return err
		}

		if err := tx.Model(&user).Update("credits", outcome.NewCredits).Error; err != nil {
			return err
		}
		if err := tx.Model(&pot).Update("pot_total_cents", outcome.NewPotCents).Error; err != nil {
			return err
		}
		if err := tx.Create(&outcome.Spin).Error; err != nil {
			return err
		}
		if outcome.Donation != nil {
			if err := tx.Create(outcome.Donation).Error; err != nil {
				return err
			}
		}

		spin = &outcome.Spin
		grid = resultGrid
		newCredits = outcome.NewCredits
		newPot = outcome.NewPotCents
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidBet), errors.Is(err, ErrInsufficientCredits):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	default:
		log.Printf("❌ [SPIN] Transaction failed for user %s: %v", actingUserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process spin"})
	}

	// Highlighting only. The committed Won flag is the payout truth;
	// this pass never touches balances.
	winningLines := s.Engine.EvaluateGrid(grid)

	return c.JSON(fiber.Map{
		"spin":         spin,
		"newCredits":   newCredits,
		"newPotAmount": newPot,
		"winningLines": winningLines,
	})
}
