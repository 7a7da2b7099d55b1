package services

import (
	"errors"
	"testing"
	"time"

	"clicker-backend/models"
)

func testPlayer(t *testing.T, now time.Time) *models.Player {
	t.Helper()
	return NewPlayer("ext-123", "Test Player", now)
}

func TestNewPlayerDefaults(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)

	if p.Energy != models.BaseMaxEnergy {
		t.Fatalf("new player energy=%d, want %d", p.Energy, models.BaseMaxEnergy)
	}
	if p.Score != 0 || p.TotalClicks != 0 {
		t.Fatalf("new player counters not zeroed: score=%d clicks=%d", p.Score, p.TotalClicks)
	}
	if !p.LastEnergyUpdate.Equal(now) {
		t.Fatalf("new player epoch=%v, want %v", p.LastEnergyUpdate, now)
	}
	if p.ReferralCode == "" {
		t.Fatal("new player has no referral code")
	}
}

func TestReconcileEnergyRegeneration(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Energy = 100
	p.LastEnergyUpdate = now.Add(-50 * time.Second)

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.Energy != 150 {
		t.Fatalf("energy=%d, want 150", p.Energy)
	}
	if !p.LastEnergyUpdate.Equal(now) {
		t.Fatalf("epoch not advanced: %v", p.LastEnergyUpdate)
	}
}

func TestReconcileEnergyCap(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Energy = 240
	p.LastEnergyUpdate = now.Add(-1000 * time.Second)

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.Energy != 250 {
		t.Fatalf("energy=%d, want 250 (capped)", p.Energy)
	}
}

func TestReconcileClockSkewClampsToZero(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Energy = 100
	p.LastEnergyUpdate = now.Add(30 * time.Second) // stored epoch in the future

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.Energy != 100 {
		t.Fatalf("energy=%d, want 100 (no depletion on skew)", p.Energy)
	}
}

func TestReconcileFailsOpenOnZeroEpoch(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Energy = 7
	p.LastEnergyUpdate = time.Time{}

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.Energy != p.MaxEnergy() {
		t.Fatalf("energy=%d, want full %d on unusable epoch", p.Energy, p.MaxEnergy())
	}
}

func TestReconcileFillsLegacyDefaults(t *testing.T) {
	now := time.Now()
	p := &models.Player{ExternalID: "legacy-1", Score: -5, TotalClicks: -1}

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.UpgradesOwned == nil || p.Achievements == nil || p.Referrals == nil || p.ActiveBoosts == nil {
		t.Fatal("feature lists not defaulted")
	}
	if p.Score != 0 || p.TotalClicks != 0 {
		t.Fatalf("negative counters not clamped: score=%d clicks=%d", p.Score, p.TotalClicks)
	}
	if p.ReferralCode == "" {
		t.Fatal("referral code not backfilled")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Score = 12345
	p.Energy = 50
	p.LastEnergyUpdate = now.Add(-20 * time.Second)

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	first := *p
	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if p.Energy != first.Energy || p.Level != first.Level || p.Score != first.Score {
		t.Fatalf("re-reconcile at same instant changed state: %+v vs %+v", first, *p)
	}
}

func TestReconcileRejectsMissingIdentity(t *testing.T) {
	err := ReconcilePlayer(&models.Player{}, time.Now())
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("err=%v, want ErrMalformedRecord", err)
	}
	if err := ReconcilePlayer(nil, time.Now()); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("nil record err=%v, want ErrMalformedRecord", err)
	}
}

func TestReconcilePrunesExpiredBoosts(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.ActiveBoosts = []models.Boost{
		{Multiplier: 2, ExpiresAt: now.Add(-time.Minute)},
		{Multiplier: 3, ExpiresAt: now.Add(time.Hour)},
	}

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(p.ActiveBoosts) != 1 || p.ActiveBoosts[0].Multiplier != 3 {
		t.Fatalf("boosts after prune: %+v", p.ActiveBoosts)
	}
}

func TestReconcileDerivesLevel(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Score = 10000
	p.Level = 99 // stale/forged level must be overwritten

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	wantLevel, _ := LevelFor(10000)
	if p.Level != wantLevel {
		t.Fatalf("level=%d, want %d", p.Level, wantLevel)
	}
}

func TestMaxEnergyWithUpgrade(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.UpgradesOwned = []string{"battery_pack"}
	p.Energy = 400
	p.LastEnergyUpdate = now.Add(-1000 * time.Second)

	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.Energy != 500 {
		t.Fatalf("energy=%d, want 500 (base 250 + battery pack 250)", p.Energy)
	}
}
