package services

import (
	"log"

	"clicker-backend/models"
)

// AutoAwardAchievements checks every trigger against the reconciled record
// and appends any newly earned codes. Already-held achievements are never
// awarded twice, so the call is idempotent. Returns the codes awarded by
// this call.
func AutoAwardAchievements(p *models.Player) []string {
	var awarded []string
	for _, trigger := range models.AchievementTriggers {
		if hasAchievement(p, trigger.Code) {
			continue
		}
		if meetsThreshold(p, trigger.Threshold) {
			p.Achievements = append(p.Achievements, trigger.Code)
			awarded = append(awarded, trigger.Code)
			log.Printf("[Achievement] %s earned %s", p.ExternalID, trigger.Code)
		}
	}
	return awarded
}

func hasAchievement(p *models.Player, code string) bool {
	for _, c := range p.Achievements {
		if c == code {
			return true
		}
	}
	return false
}

func meetsThreshold(p *models.Player, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "total_clicks":
			if p.TotalClicks < required {
				return false
			}
		case "score":
			if p.Score < required {
				return false
			}
		case "level":
			if int64(p.Level) < required {
				return false
			}
		case "referrals":
			if int64(len(p.Referrals)) < required {
				return false
			}
		case "upgrades":
			if int64(len(p.UpgradesOwned)) < required {
				return false
			}
		default:
			return false
		}
	}
	return true
}
