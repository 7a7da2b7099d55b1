package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"clicker-backend/models"
	"clicker-backend/utils"

	"gorm.io/gorm"
)

const (
	storeRetryAttempts = 3
	storeRetryBase     = 200 * time.Millisecond
)

// PlayerService owns every read and write of player records. All loads go
// through ReconcilePlayer so the rest of the system only ever sees fully
// populated, up-to-date state.
//
// Writes are last-write-wins: two concurrent requests for the same player
// can both read the same row and the second upsert silently discards the
// first one's mutation. This matches the store's upsert-only contract; no
// optimistic locking is layered on top.
type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// retryableStoreErr: record-not-found is a definitive answer, everything
// else from the store is treated as transient.
func retryableStoreErr(err error) bool {
	return !errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *PlayerService) load(externalID string) (*models.Player, error) {
	if s.DB == nil {
		return nil, ErrStoreUnavailable
	}
	var p models.Player
	err := utils.Retry(storeRetryAttempts, storeRetryBase, retryableStoreErr, func() error {
		return s.DB.Where("external_id = ?", externalID).First(&p).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &p, nil
}

func (s *PlayerService) save(p *models.Player) error {
	if s.DB == nil {
		return ErrStoreUnavailable
	}
	err := utils.Retry(storeRetryAttempts, storeRetryBase, nil, func() error {
		return s.DB.Save(p).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// withPlayer is the read-reconcile-mutate-write cycle every gameplay action
// goes through. A precondition failure from fn discards the in-memory
// record and writes nothing.
func (s *PlayerService) withPlayer(externalID string, now time.Time, fn func(*models.Player) error) (*models.Player, error) {
	p, err := s.load(externalID)
	if err != nil {
		return nil, err
	}
	if err := ReconcilePlayer(p, now); err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(p); err != nil {
			return nil, err
		}
	}
	AutoAwardAchievements(p)
	if err := s.save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlayer returns the reconciled record for an identity, persisting the
// reconciled view so the stored energy clock advances. Unknown identities
// get ErrPlayerNotFound; the read path never auto-creates.
func (s *PlayerService) GetPlayer(externalID string, now time.Time) (*models.Player, error) {
	return s.withPlayer(externalID, now, nil)
}

// SyncRequest is the client-side record shape accepted on upsert. The
// client reports how many clicks it made since the last sync; the server
// replays them against its own energy and bonus math. Client-asserted
// score and level are never trusted.
type SyncRequest struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	Clicks      int64  `json:"clicks"`
}

// SyncPlayer upserts the record for req.ExternalID, creating it on first
// contact with full energy. Reported clicks are accepted only as far as
// the server-side energy budget allows; the rest are dropped.
func (s *PlayerService) SyncPlayer(req SyncRequest, now time.Time) (*models.Player, error) {
	p, err := s.load(req.ExternalID)
	if errors.Is(err, ErrPlayerNotFound) {
		p = NewPlayer(req.ExternalID, req.DisplayName, now)
	} else if err != nil {
		return nil, err
	}
	if err := ReconcilePlayer(p, now); err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		p.DisplayName = req.DisplayName
	}
	accepted := ReplayClicks(p, req.Clicks, now)
	if accepted < req.Clicks {
		log.Printf("[Sync] %s reported %d clicks, accepted %d (energy limit)", req.ExternalID, req.Clicks, accepted)
	}
	AutoAwardAchievements(p)
	if err := s.save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Click applies a single server-authoritative click.
func (s *PlayerService) Click(externalID string, now time.Time) (*models.Player, error) {
	return s.withPlayer(externalID, now, func(p *models.Player) error {
		return ApplyClick(p, now)
	})
}

// Purchase buys an upgrade from the catalog.
func (s *PlayerService) Purchase(externalID, upgradeID string, now time.Time) (*models.Player, error) {
	return s.withPlayer(externalID, now, func(p *models.Player) error {
		return PurchaseUpgrade(p, upgradeID, now)
	})
}

// ClaimDaily claims the daily streak bonus and returns the reward amount.
func (s *PlayerService) ClaimDaily(externalID string, now time.Time) (*models.Player, int64, error) {
	var reward int64
	p, err := s.withPlayer(externalID, now, func(p *models.Player) error {
		var claimErr error
		reward, claimErr = ClaimDailyBonus(p, now)
		return claimErr
	})
	return p, reward, err
}

// ClaimReferral pays out the referral bonus.
func (s *PlayerService) ClaimReferral(externalID string, now time.Time) (*models.Player, int64, error) {
	var reward int64
	p, err := s.withPlayer(externalID, now, func(p *models.Player) error {
		var claimErr error
		reward, claimErr = ClaimReferralBonus(p, now)
		return claimErr
	})
	return p, reward, err
}

// WatchAd records an ad view and credits the flat reward.
func (s *PlayerService) WatchAd(externalID string, now time.Time) (*models.Player, int64, error) {
	var reward int64
	p, err := s.withPlayer(externalID, now, func(p *models.Player) error {
		reward = RecordAdWatch(p)
		return nil
	})
	return p, reward, err
}

// AddReferral appends referredID to the referrer's invite set. The append
// is idempotent per referrer: repeating the call changes nothing.
func (s *PlayerService) AddReferral(referrerID, referredID string, now time.Time) (*models.Player, error) {
	if referrerID == referredID {
		return nil, ErrSelfReferral
	}
	return s.withPlayer(referrerID, now, func(p *models.Player) error {
		return RecordReferral(p, referredID)
	})
}

// LinkWallet stores the player's wallet address.
func (s *PlayerService) LinkWallet(externalID, address string, now time.Time) (*models.Player, error) {
	return s.withPlayer(externalID, now, func(p *models.Player) error {
		p.WalletAddress = address
		return nil
	})
}

// Top returns the leaderboard projection ordered by score, capped at 100
// entries. Wallet addresses and raw timestamps never leave this method.
func (s *PlayerService) Top(limit int) ([]models.PublicPlayer, error) {
	if s.DB == nil {
		return nil, ErrStoreUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var players []models.Player
	err := utils.Retry(storeRetryAttempts, storeRetryBase, nil, func() error {
		return s.DB.Order("score DESC").Limit(limit).Find(&players).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	top := make([]models.PublicPlayer, len(players))
	for i, p := range players {
		level, name := LevelFor(p.Score)
		top[i] = models.PublicPlayer{
			ExternalID:  p.ExternalID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
			TotalClicks: p.TotalClicks,
			Level:       level,
			LevelName:   name,
			Rank:        i + 1,
		}
	}
	return top, nil
}
