package services

import (
	"math"
	"time"

	"clicker-backend/models"
)

// Mutators apply one gameplay action to an already-reconciled record. They
// either mutate p and return nil, or leave p untouched and return the
// precondition error. Persisting the result is the caller's job; no
// transaction spans two mutators.

const dateLayout = "2006-01-02"

// ApplyClick spends one energy for one click. Yield is the base click plus
// flat upgrade bonuses, scaled by the active boost multiplier.
func ApplyClick(p *models.Player, now time.Time) error {
	if p.Energy < 1 {
		return ErrInsufficientEnergy
	}
	// Yield follows floor(base * multiplier) exactly: a sub-1 multiplier
	// can floor a click to zero score, but the click is still spent.
	base := 1 + p.ClickBonus()
	yield := int64(math.Floor(float64(base) * p.ActiveMultiplier(now)))
	p.Energy--
	p.Score += yield
	p.TotalClicks++
	p.Level, _ = LevelFor(p.Score)
	return nil
}

// ReplayClicks applies up to n client-reported clicks against the
// server-side energy budget and returns how many were accepted. Clicks
// beyond the budget are dropped, never queued; a non-positive n is a no-op.
func ReplayClicks(p *models.Player, n int64, now time.Time) int64 {
	var accepted int64
	for accepted < n {
		if err := ApplyClick(p, now); err != nil {
			break
		}
		accepted++
	}
	return accepted
}

// PurchaseUpgrade debits the cost and adds the upgrade to the owned set.
// Boost upgrades start their window immediately; capacity upgrades take
// effect on the next reconcile.
func PurchaseUpgrade(p *models.Player, upgradeID string, now time.Time) error {
	up := models.UpgradeByID(upgradeID)
	if up == nil {
		return ErrUnknownUpgrade
	}
	if p.OwnsUpgrade(up.ID) {
		return ErrAlreadyOwned
	}
	if p.Score < up.Cost {
		return ErrInsufficientFunds
	}
	p.Score -= up.Cost
	p.UpgradesOwned = append(p.UpgradesOwned, up.ID)
	if up.Effect == models.EffectBoost {
		p.ActiveBoosts = append(p.ActiveBoosts, models.Boost{
			Multiplier: up.BoostMultiplier,
			ExpiresAt:  now.Add(up.BoostDuration),
		})
	}
	p.Level, _ = LevelFor(p.Score)
	return nil
}

// ClaimDailyBonus credits today's streak reward. The streak continues if
// the last claim was yesterday and resets to day 1 after any gap.
func ClaimDailyBonus(p *models.Player, now time.Time) (int64, error) {
	today := now.Format(dateLayout)
	if p.LastDailyClaim == today {
		return 0, ErrAlreadyClaimedToday
	}
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	if p.LastDailyClaim == yesterday {
		p.DailyStreak++
	} else {
		p.DailyStreak = 1
	}
	p.LastDailyClaim = today
	reward := DailyBonusFor(p.DailyStreak)
	p.Score += reward
	p.Level, _ = LevelFor(p.Score)
	return reward, nil
}

// ClaimReferralBonus pays out for accumulated referrals: needs at least
// MinReferralsForClaim invites and a 24h gap since the last claim.
func ClaimReferralBonus(p *models.Player, now time.Time) (int64, error) {
	if len(p.Referrals) < MinReferralsForClaim {
		return 0, ErrNotEnoughReferrals
	}
	if p.LastReferralClaim != nil && now.Sub(*p.LastReferralClaim) < 24*time.Hour {
		return 0, ErrOnCooldown
	}
	reward := ReferralClaimReward * int64(len(p.Referrals))
	p.Score += reward
	claimedAt := now
	p.LastReferralClaim = &claimedAt
	p.Level, _ = LevelFor(p.Score)
	return reward, nil
}

// RecordReferral appends referredID to the player's invite set. The append
// is idempotent per referrer; repeating the call changes nothing.
func RecordReferral(p *models.Player, referredID string) error {
	if p.ExternalID == referredID {
		return ErrSelfReferral
	}
	if !p.HasReferred(referredID) {
		p.Referrals = append(p.Referrals, referredID)
	}
	return nil
}

// RecordAdWatch bumps the watch counter and credits the flat ad reward.
func RecordAdWatch(p *models.Player) int64 {
	p.AdsWatched++
	p.Score += AdWatchReward
	p.Level, _ = LevelFor(p.Score)
	return AdWatchReward
}
