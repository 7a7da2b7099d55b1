// services/scheduler.go
package services

import (
	"log"
	"time"

	"clicker-backend/models"

	"github.com/go-co-op/gocron/v2"
)

// StartIncomeScheduler runs the passive-income tick: every minute, players
// holding income upgrades (auto tappers, click farms) get their per-minute
// yield credited, and boosts that expired while they were offline get
// swept out of the row.
func (s *PlayerService) StartIncomeScheduler() {
	if s.DB == nil {
		log.Println("[Scheduler] store disabled, passive income off")
		return
	}
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var players []models.Player
			err := s.DB.Where("jsonb_array_length(upgrades_owned) > 0").
				Find(&players).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			now := time.Now()
			for _, p := range players {
				income := p.PassiveIncomePerMinute()
				expired := false
				for _, b := range p.ActiveBoosts {
					if !b.ExpiresAt.After(now) {
						expired = true
						break
					}
				}
				if income == 0 && !expired {
					continue
				}
				if err := ReconcilePlayer(&p, now); err != nil {
					log.Printf("[Scheduler] skipping %s: %v", p.ExternalID, err)
					continue
				}
				p.Score += income
				p.Level, _ = LevelFor(p.Score)
				if err := s.DB.Save(&p).Error; err != nil {
					log.Printf("[Scheduler] failed to credit %s: %v", p.ExternalID, err)
				}
			}
		}),
	)
}
