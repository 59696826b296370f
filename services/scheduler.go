package services

import (
	"log"

	"charity-slots/models"

	"github.com/go-co-op/gocron/v2"
)

// StartDailyCreditScheduler tops every active player back up to the
// daily credit floor once a day at midnight UTC, so the game stays
// playable while credit purchases are stubbed.
func (s *AccountService) StartDailyCreditScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.CronJob("0 0 * * *", false),
		gocron.NewTask(func() {
			res := s.DB.Model(&models.User{}).
				Where("credits < ?", models.DailyCreditFloor).
				Update("credits", models.DailyCreditFloor)
			if res.Error != nil {
				log.Printf("[Scheduler] Daily credit top-up failed: %v", res.Error)
				return
			}
			log.Printf("✅ Daily credit top-up applied to %d user(s)", res.RowsAffected)
		}),
	)
}
