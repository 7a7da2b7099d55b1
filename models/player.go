package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseMaxEnergy is the energy cap for a player with no capacity upgrades.
const BaseMaxEnergy = 250

// Boost is a temporary score multiplier attached to a player.
type Boost struct {
	Multiplier float64   `json:"multiplier"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Player is the one-row-per-player record (denormalized for performance).
// ExternalID links to the identity provider; everything else is game state.
type Player struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalID string `gorm:"uniqueIndex;not null" json:"external_id"`

	DisplayName  string `json:"display_name"`
	ReferralCode string `gorm:"index" json:"referral_code"`

	// Core counters
	Score       int64 `json:"score" gorm:"default:0"`
	TotalClicks int64 `json:"total_clicks" gorm:"default:0"`

	// Energy budget. Energy is only accurate as of LastEnergyUpdate;
	// ReconcilePlayer regenerates it before any read or mutation.
	Energy           int       `json:"energy" gorm:"default:0"`
	LastEnergyUpdate time.Time `json:"last_energy_update"`

	// Level is derived from Score against the level table on every
	// reconcile. It is stored only so leaderboard queries can project it;
	// it is never trusted as ground truth.
	Level int `json:"level" gorm:"default:0"`

	UpgradesOwned []string `gorm:"type:jsonb;serializer:json" json:"upgrades_owned"`
	Achievements  []string `gorm:"type:jsonb;serializer:json" json:"achievements"`
	ActiveBoosts  []Boost  `gorm:"type:jsonb;serializer:json" json:"active_boosts"`

	// Referral state. Referrals holds the external IDs this player invited.
	Referrals         []string   `gorm:"type:jsonb;serializer:json" json:"referrals"`
	LastReferralClaim *time.Time `json:"last_referral_claim,omitempty"`

	// Daily bonus state. LastDailyClaim is a YYYY-MM-DD date string so the
	// "claimed today" check is a plain comparison regardless of timezone drift.
	DailyStreak    int    `json:"daily_streak" gorm:"default:0"`
	LastDailyClaim string `gorm:"type:varchar(10)" json:"last_daily_claim"`

	AdsWatched    int    `json:"ads_watched" gorm:"default:0"`
	WalletAddress string `gorm:"type:varchar(128)" json:"wallet_address,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// MaxEnergy returns the player's energy cap including capacity upgrades.
func (p *Player) MaxEnergy() int {
	max := BaseMaxEnergy
	for _, id := range p.UpgradesOwned {
		if up := UpgradeByID(id); up != nil && up.Effect == EffectMaxEnergy {
			max += int(up.Magnitude)
		}
	}
	return max
}

// ClickBonus returns the flat per-click score bonus from owned upgrades.
func (p *Player) ClickBonus() int64 {
	var bonus int64
	for _, id := range p.UpgradesOwned {
		if up := UpgradeByID(id); up != nil && up.Effect == EffectClickBonus {
			bonus += up.Magnitude
		}
	}
	return bonus
}

// PassiveIncomePerMinute sums income effects of owned upgrades.
func (p *Player) PassiveIncomePerMinute() int64 {
	var income int64
	for _, id := range p.UpgradesOwned {
		if up := UpgradeByID(id); up != nil && up.Effect == EffectPassiveIncome {
			income += up.Magnitude
		}
	}
	return income
}

// ActiveMultiplier returns the combined multiplier of boosts still live at
// now. Boosts stack multiplicatively; with none active the result is 1.
func (p *Player) ActiveMultiplier(now time.Time) float64 {
	mult := 1.0
	for _, b := range p.ActiveBoosts {
		if b.ExpiresAt.After(now) && b.Multiplier > 0 {
			mult *= b.Multiplier
		}
	}
	return mult
}

// OwnsUpgrade reports whether the upgrade id is already in the owned set.
func (p *Player) OwnsUpgrade(id string) bool {
	for _, owned := range p.UpgradesOwned {
		if owned == id {
			return true
		}
	}
	return false
}

// HasReferred reports whether the given external ID was already counted as
// a referral of this player.
func (p *Player) HasReferred(externalID string) bool {
	for _, r := range p.Referrals {
		if r == externalID {
			return true
		}
	}
	return false
}

// PublicPlayer is the leaderboard projection: no wallet address, no raw
// timestamps.
type PublicPlayer struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	Score       int64  `json:"score"`
	TotalClicks int64  `json:"total_clicks"`
	Level       int    `json:"level"`
	LevelName   string `json:"level_name"`
	Rank        int    `json:"rank"`
}
