package services

import (
	"fmt"
	"time"

	"clicker-backend/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// NewPlayer builds a fresh record for an identity with no row yet: all
// counters zeroed, full energy, referral code derived from the display name.
func NewPlayer(externalID, displayName string, now time.Time) *models.Player {
	p := &models.Player{
		ID:               uuid.NewString(),
		ExternalID:       externalID,
		DisplayName:      displayName,
		Energy:           models.BaseMaxEnergy,
		LastEnergyUpdate: now,
		UpgradesOwned:    []string{},
		Achievements:     []string{},
		ActiveBoosts:     []models.Boost{},
		Referrals:        []string{},
	}
	p.ReferralCode = MakeReferralCode(displayName, p.ID)
	return p
}

// MakeReferralCode slugifies the display name and appends a short unique
// suffix so two players named the same get distinct codes.
func MakeReferralCode(displayName, id string) string {
	base := slug.Make(displayName)
	if base == "" {
		base = "player"
	}
	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return base + "-" + suffix
}

// ReconcilePlayer brings a possibly stale record up to date as of now:
// energy regeneration, level derivation, default filling for legacy rows,
// expired boost pruning. It mutates p in place, has no other side effects,
// and is idempotent apart from advancing the energy clock. The caller is
// responsible for persisting the result.
func ReconcilePlayer(p *models.Player, now time.Time) error {
	if p == nil || p.ExternalID == "" {
		return fmt.Errorf("%w: missing external id", ErrMalformedRecord)
	}

	// Legacy rows predate some feature lists; fill every absent field with
	// its default so nothing downstream has to null-check.
	if p.UpgradesOwned == nil {
		p.UpgradesOwned = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.ActiveBoosts == nil {
		p.ActiveBoosts = []models.Boost{}
	}
	if p.Referrals == nil {
		p.Referrals = []string{}
	}
	if p.Score < 0 {
		p.Score = 0
	}
	if p.TotalClicks < 0 {
		p.TotalClicks = 0
	}
	if p.ReferralCode == "" {
		p.ReferralCode = MakeReferralCode(p.DisplayName, p.ID)
	}

	max := p.MaxEnergy()
	if p.LastEnergyUpdate.IsZero() {
		// Unusable regeneration epoch: fail open with full energy rather
		// than rejecting the record. Exploitable only if a client could
		// write its own timestamp, which the sync path never allows.
		p.Energy = max
	} else {
		elapsed := int64(now.Sub(p.LastEnergyUpdate).Seconds())
		if elapsed < 0 {
			// Clock skew: never deplete energy for time running backwards.
			elapsed = 0
		}
		energy := int64(p.Energy) + elapsed
		if energy < 0 {
			energy = 0
		}
		if energy > int64(max) {
			energy = int64(max)
		}
		p.Energy = int(energy)
	}
	p.LastEnergyUpdate = now

	// Drop boosts that have run out.
	live := p.ActiveBoosts[:0]
	for _, b := range p.ActiveBoosts {
		if b.ExpiresAt.After(now) {
			live = append(live, b)
		}
	}
	p.ActiveBoosts = live

	// Level is always recomputed from score, never trusted from storage or
	// client input.
	p.Level, _ = LevelFor(p.Score)

	return nil
}
