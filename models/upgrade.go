package models

import "time"

// EffectKind says what an upgrade does once purchased.
type EffectKind string

const (
	EffectClickBonus    EffectKind = "click_bonus"    // flat score added per click
	EffectPassiveIncome EffectKind = "passive_income" // score per minute, credited by the scheduler
	EffectMaxEnergy     EffectKind = "max_energy"     // raises the energy cap
	EffectBoost         EffectKind = "boost"          // timed score multiplier, starts at purchase
	EffectSkin          EffectKind = "skin"           // cosmetic only
)

// Upgrade: static catalog entry. Each upgrade is purchasable once.
type Upgrade struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int64      `json:"cost"`
	Effect      EffectKind `json:"effect"`

	// Magnitude meaning depends on Effect: score per click (click_bonus),
	// score per minute (passive_income), extra cap (max_energy). Unused
	// for skins.
	Magnitude int64 `json:"magnitude,omitempty"`

	// Boost-only fields.
	BoostMultiplier float64       `json:"boost_multiplier,omitempty"`
	BoostDuration   time.Duration `json:"boost_duration,omitempty"`

	IconURL string `json:"icon_url,omitempty"`
}

// UpgradeCatalog is loaded once and never mutated. The client keeps its own
// copy of this table for optimistic UI; the server remains authoritative.
var UpgradeCatalog = []Upgrade{
	{
		ID:          "double_tap",
		Name:        "Double Tap",
		Description: "+1 score per click",
		Cost:        1000,
		Effect:      EffectClickBonus,
		Magnitude:   1,
	},
	{
		ID:          "golden_finger",
		Name:        "Golden Finger",
		Description: "+4 score per click",
		Cost:        5000,
		Effect:      EffectClickBonus,
		Magnitude:   4,
	},
	{
		ID:          "battery_pack",
		Name:        "Battery Pack",
		Description: "+250 max energy",
		Cost:        2500,
		Effect:      EffectMaxEnergy,
		Magnitude:   250,
	},
	{
		ID:          "auto_tapper",
		Name:        "Auto Tapper",
		Description: "Clicks for you: +6 score per minute",
		Cost:        8000,
		Effect:      EffectPassiveIncome,
		Magnitude:   6,
	},
	{
		ID:          "click_farm",
		Name:        "Click Farm",
		Description: "+20 score per minute",
		Cost:        20000,
		Effect:      EffectPassiveIncome,
		Magnitude:   20,
	},
	{
		ID:              "energy_drink",
		Name:            "Energy Drink",
		Description:     "2x score for one hour",
		Cost:            3000,
		Effect:          EffectBoost,
		BoostMultiplier: 2,
		BoostDuration:   time.Hour,
	},
	{
		ID:          "neon_skin",
		Name:        "Neon Skin",
		Description: "A glowing look for your circle",
		Cost:        1500,
		Effect:      EffectSkin,
	},
}

// UpgradeByID returns the catalog entry, or nil for an unknown id. Callers
// must treat nil as a no-op purchase attempt, not a crash.
func UpgradeByID(id string) *Upgrade {
	for i := range UpgradeCatalog {
		if UpgradeCatalog[i].ID == id {
			return &UpgradeCatalog[i]
		}
	}
	return nil
}
