package services

import "testing"

func TestLevelForZeroScore(t *testing.T) {
	level, name := LevelFor(0)
	if level != 0 || name != LevelTable[0].Name {
		t.Fatalf("LevelFor(0)=(%d,%q), want (0,%q)", level, name, LevelTable[0].Name)
	}
}

func TestLevelForMonotonic(t *testing.T) {
	scores := []int64{-10, 0, 1, 499, 500, 2500, 9999, 10000, 50000, 200000, 999999, 1000000, 5000000}
	prev := -1
	for _, score := range scores {
		level, _ := LevelFor(score)
		if level < prev {
			t.Fatalf("LevelFor not monotonic: score=%d level=%d prev=%d", score, level, prev)
		}
		prev = level
	}
}

func TestLevelForExactThresholds(t *testing.T) {
	for i, entry := range LevelTable {
		level, name := LevelFor(entry.MinScore)
		if level != i || name != entry.Name {
			t.Fatalf("LevelFor(%d)=(%d,%q), want (%d,%q)", entry.MinScore, level, name, i, entry.Name)
		}
	}
}

func TestDailyBonusClampsToTable(t *testing.T) {
	last := DailyBonusTable[len(DailyBonusTable)-1]
	if got := DailyBonusFor(len(DailyBonusTable) + 5); got != last {
		t.Fatalf("DailyBonusFor beyond table=%d, want %d", got, last)
	}
	if got := DailyBonusFor(0); got != DailyBonusTable[0] {
		t.Fatalf("DailyBonusFor(0)=%d, want %d", got, DailyBonusTable[0])
	}
	if got := DailyBonusFor(3); got != DailyBonusTable[2] {
		t.Fatalf("DailyBonusFor(3)=%d, want %d", got, DailyBonusTable[2])
	}
}

func TestLevelTableStartsAtZero(t *testing.T) {
	if LevelTable[0].MinScore != 0 {
		t.Fatalf("first level threshold=%d, must be 0 for LevelFor to be total", LevelTable[0].MinScore)
	}
	for i := 1; i < len(LevelTable); i++ {
		if LevelTable[i].MinScore <= LevelTable[i-1].MinScore {
			t.Fatalf("level table not strictly ascending at %d", i)
		}
	}
}
