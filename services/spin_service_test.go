package services

import (
	"encoding/json"
	"errors"
	"testing"

	"charity-slots/models"
)

func TestSettleSpin(t *testing.T) {
	tests := []struct {
		name       string
		credits    int
		bet        int
		potCents   int64
		won        bool
		wantCredit int
		wantPot    int64
		wantPayout int64
	}{
		{
			name:    "losing spin feeds the pot at 25 cents per credit",
			credits: 10, bet: 5, potCents: 500, won: false,
			wantCredit: 5, wantPot: 625, wantPayout: 0,
		},
		{
			name:    "winning spin takes the whole pot",
			credits: 10, bet: 5, potCents: 800, won: true,
			wantCredit: 5, wantPot: 0, wantPayout: 800,
		},
		{
			name:    "losing spin on empty pot",
			credits: 3, bet: 1, potCents: 0, won: false,
			wantCredit: 2, wantPot: 25, wantPayout: 0,
		},
		{
			name:    "winning spin on empty pot pays nothing",
			credits: 1, bet: 1, potCents: 0, won: true,
			wantCredit: 0, wantPot: 0, wantPayout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settleSpin(tt.credits, tt.bet, tt.potCents, tt.won)
			if got.NewCredits != tt.wantCredit {
				t.Errorf("NewCredits = %d, want %d", got.NewCredits, tt.wantCredit)
			}
			if got.NewPotCents != tt.wantPot {
				t.Errorf("NewPotCents = %d, want %d", got.NewPotCents, tt.wantPot)
			}
			if got.PayoutCents != tt.wantPayout {
				t.Errorf("PayoutCents = %d, want %d", got.PayoutCents, tt.wantPayout)
			}
		})
	}
}

func TestRunSpin(t *testing.T) {
	charityX := "3f0e8a4c-5a31-4b2e-9f7d-8c6b2d1e0a9f"

	tests := []struct {
		name         string
		user         models.User
		potCents     int64
		bet          int
		won          bool
		wantCredits  int
		wantPot      int64
		wantPayout   int64
		wantCharity  *string
		wantDonation *int64 // nil means no Donation row
	}{
		{
			name:        "losing spin feeds pot and credits no charity",
			user:        models.User{ID: "u1", Credits: 10, SelectedCharityID: &charityX},
			potCents:    500, bet: 5, won: false,
			wantCredits: 5, wantPot: 625, wantPayout: 0,
			wantCharity: nil, wantDonation: nil,
		},
		{
			name:        "winning spin with charity produces matching donation",
			user:        models.User{ID: "u1", Credits: 10, SelectedCharityID: &charityX},
			potCents:    800, bet: 5, won: true,
			wantCredits: 5, wantPot: 0, wantPayout: 800,
			wantCharity: &charityX, wantDonation: int64Ptr(800),
		},
		{
			name:        "winning spin without charity produces no donation",
			user:        models.User{ID: "u1", Credits: 10},
			potCents:    800, bet: 5, won: true,
			wantCredits: 5, wantPot: 0, wantPayout: 800,
			wantCharity: nil, wantDonation: nil,
		},
	}

	grid := noWinGrid()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := runSpin(tt.user, tt.potCents, tt.bet, grid, tt.won)
			if err != nil {
				t.Fatalf("runSpin: %v", err)
			}
			if outcome.NewCredits != tt.wantCredits {
				t.Errorf("NewCredits = %d, want %d", outcome.NewCredits, tt.wantCredits)
			}
			if outcome.NewPotCents != tt.wantPot {
				t.Errorf("NewPotCents = %d, want %d", outcome.NewPotCents, tt.wantPot)
			}

			spin := outcome.Spin
			if spin.UserID != tt.user.ID || spin.BetAmount != tt.bet {
				t.Errorf("spin identity: got user %q bet %d", spin.UserID, spin.BetAmount)
			}
			if spin.Won != tt.won {
				t.Errorf("spin.Won = %v, want %v", spin.Won, tt.won)
			}
			if spin.PotAmountWonCents != tt.wantPayout {
				t.Errorf("spin.PotAmountWonCents = %d, want %d", spin.PotAmountWonCents, tt.wantPayout)
			}
			switch {
			case tt.wantCharity == nil && spin.CharityID != nil:
				t.Errorf("spin.CharityID = %v, want nil", *spin.CharityID)
			case tt.wantCharity != nil && (spin.CharityID == nil || *spin.CharityID != *tt.wantCharity):
				t.Errorf("spin.CharityID = %v, want %v", spin.CharityID, *tt.wantCharity)
			}

			var storedGrid Grid
			if err := json.Unmarshal(spin.ResultGrid, &storedGrid); err != nil {
				t.Fatalf("spin.ResultGrid does not decode: %v", err)
			}
			if storedGrid != grid {
				t.Error("spin.ResultGrid does not match the played grid")
			}

			if tt.wantDonation == nil {
				if outcome.Donation != nil {
					t.Fatalf("unexpected donation: %+v", outcome.Donation)
				}
				return
			}
			if outcome.Donation == nil {
				t.Fatal("expected a donation, got none")
			}
			if outcome.Donation.AmountCents != *tt.wantDonation {
				t.Errorf("donation.AmountCents = %d, want %d", outcome.Donation.AmountCents, *tt.wantDonation)
			}
			if outcome.Donation.CharityID != *tt.wantCharity {
				t.Errorf("donation.CharityID = %q, want %q", outcome.Donation.CharityID, *tt.wantCharity)
			}
			if outcome.Donation.UserID != tt.user.ID {
				t.Errorf("donation.UserID = %q, want %q", outcome.Donation.UserID, tt.user.ID)
			}
		})
	}
}

func TestRunSpinRejectsInsufficientCreditsWithoutRecords(t *testing.T) {
	user := models.User{ID: "u1", Credits: 3}
	outcome, err := runSpin(user, 500, 5, noWinGrid(), false)
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if outcome.Spin.ID != "" || outcome.Donation != nil {
		t.Fatalf("rejected spin must build no records, got %+v", outcome)
	}
	if outcome.NewCredits != 0 || outcome.NewPotCents != 0 {
		t.Fatalf("rejected spin must leave balances untouched, got %+v", outcome)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestEnsureStake(t *testing.T) {
	if err := ensureStake(10, 5); err != nil {
		t.Fatalf("valid stake rejected: %v", err)
	}
	if err := ensureStake(3, 5); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if err := ensureStake(10, 0); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet for zero bet, got %v", err)
	}
	if err := ensureStake(10, -1); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("expected ErrInvalidBet for negative bet, got %v", err)
	}
	// Exact balance is spendable
	if err := ensureStake(5, 5); err != nil {
		t.Fatalf("stake equal to balance rejected: %v", err)
	}
}
