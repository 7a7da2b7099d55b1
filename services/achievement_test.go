package services

import (
	"testing"
	"time"
)

func TestAutoAwardAchievements(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.TotalClicks = 150

	awarded := AutoAwardAchievements(p)
	if len(awarded) != 2 {
		t.Fatalf("awarded=%v, want FIRST_CLICK and CLICKER_100", awarded)
	}
	if !hasAchievement(p, "FIRST_CLICK") || !hasAchievement(p, "CLICKER_100") {
		t.Fatalf("achievements=%v", p.Achievements)
	}
}

func TestAutoAwardIdempotent(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.TotalClicks = 1

	first := AutoAwardAchievements(p)
	if len(first) != 1 {
		t.Fatalf("first pass awarded=%v", first)
	}
	second := AutoAwardAchievements(p)
	if len(second) != 0 {
		t.Fatalf("second pass awarded=%v, want none", second)
	}
	if len(p.Achievements) != 1 {
		t.Fatalf("achievements=%v, want exactly one", p.Achievements)
	}
}

func TestReferralAchievement(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Referrals = []string{"a", "b", "c"}

	AutoAwardAchievements(p)
	if !hasAchievement(p, "RECRUITER") {
		t.Fatalf("achievements=%v, want RECRUITER", p.Achievements)
	}
}

func TestLevelAchievement(t *testing.T) {
	now := time.Now()
	p := testPlayer(t, now)
	p.Score = 10000 // Gold threshold
	if err := ReconcilePlayer(p, now); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	AutoAwardAchievements(p)
	if !hasAchievement(p, "GOLD_LEAGUE") {
		t.Fatalf("achievements=%v, want GOLD_LEAGUE", p.Achievements)
	}
}
