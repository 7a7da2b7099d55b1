package models

// Achievement: static config for auto-awarded achievements.
type Achievement struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Rarity      string           `json:"rarity"` // common, rare, epic, legendary
	Threshold   map[string]int64 `json:"threshold"`
}

// AchievementTriggers is checked after every score-changing write. Keys in
// Threshold: total_clicks, score, level, referrals, upgrades.
var AchievementTriggers = []Achievement{
	{
		Code:        "FIRST_CLICK",
		Name:        "First Click",
		Description: "Clicked the circle once",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_clicks": 1},
	},
	{
		Code:        "CLICKER_100",
		Name:        "Warmed Up",
		Description: "100 total clicks",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_clicks": 100},
	},
	{
		Code:        "CLICKER_10K",
		Name:        "Finger of Steel",
		Description: "10,000 total clicks",
		Rarity:      "rare",
		Threshold:   map[string]int64{"total_clicks": 10000},
	},
	{
		Code:        "SCORE_100K",
		Name:        "Six Figures",
		Description: "Reached 100,000 score",
		Rarity:      "epic",
		Threshold:   map[string]int64{"score": 100000},
	},
	{
		Code:        "RECRUITER",
		Name:        "Recruiter",
		Description: "Invited 3 friends",
		Rarity:      "rare",
		Threshold:   map[string]int64{"referrals": 3},
	},
	{
		Code:        "COLLECTOR",
		Name:        "Collector",
		Description: "Owns 3 upgrades",
		Rarity:      "rare",
		Threshold:   map[string]int64{"upgrades": 3},
	},
	{
		Code:        "GOLD_LEAGUE",
		Name:        "Gold League",
		Description: "Reached the Gold level",
		Rarity:      "epic",
		Threshold:   map[string]int64{"level": 3},
	},
}
