package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clicker-backend/services"
)

// PollLeaderboard periodically snapshots the top players into the Redis
// cache so the public leaderboard endpoint can serve without touching
// Postgres. Runs until ctx is cancelled.
func PollLeaderboard(ctx context.Context, svc *services.PlayerService, cache *services.LeaderboardCache, interval time.Duration) {
	if cache == nil {
		log.Println("[Leaderboard] cache disabled, worker not started")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh := func() {
		top, err := svc.Top(100)
		if err != nil {
			log.Printf("[Leaderboard] snapshot failed: %v", err)
			return
		}
		data, err := json.Marshal(top)
		if err != nil {
			log.Printf("[Leaderboard] marshal failed: %v", err)
			return
		}
		cache.Set(ctx, data)
	}

	refresh()
	for {
		select {
		case <-ticker.C:
			refresh()
		case <-ctx.Done():
			log.Println("[Leaderboard] worker stopped")
			return
		}
	}
}
