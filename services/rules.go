package services

// LevelThreshold maps a minimum score to a level name. The table is sorted
// ascending and starts at 0 so LevelFor is total over all scores.
type LevelThreshold struct {
	MinScore int64
	Name     string
}

var LevelTable = []LevelThreshold{
	{0, "Newbie"},
	{500, "Bronze"},
	{2500, "Silver"},
	{10000, "Gold"},
	{50000, "Platinum"},
	{200000, "Diamond"},
	{1000000, "Legend"},
}

// LevelFor returns the index and name of the highest level whose threshold
// is <= score. Negative scores clamp to the first entry.
func LevelFor(score int64) (int, string) {
	level := 0
	for i := len(LevelTable) - 1; i >= 0; i-- {
		if score >= LevelTable[i].MinScore {
			level = i
			break
		}
	}
	return level, LevelTable[level].Name
}

// DailyBonusTable holds the score reward per consecutive claim day.
// Streaks past the last day repeat the final reward.
var DailyBonusTable = []int64{100, 200, 300, 500, 750, 1000, 1500}

// DailyBonusFor clamps streakDay into the table. Day counting starts at 1.
func DailyBonusFor(streakDay int) int64 {
	if streakDay < 1 {
		streakDay = 1
	}
	if streakDay > len(DailyBonusTable) {
		streakDay = len(DailyBonusTable)
	}
	return DailyBonusTable[streakDay-1]
}

// Referral rules: a claim needs at least MinReferralsForClaim invites and
// respects a 24h cooldown; the reward scales with the invite count.
const (
	MinReferralsForClaim = 3
	ReferralClaimReward  = int64(500) // per referral
	AdWatchReward        = int64(250)
)
