package services

import "errors"

// Gameplay precondition failures. These are expected rejections: they are
// never retried and always surfaced to the client with their reason code so
// the UI can render the right state without guessing.
var (
	ErrInsufficientEnergy  = errors.New("insufficient energy")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAlreadyOwned        = errors.New("upgrade already owned")
	ErrUnknownUpgrade      = errors.New("unknown upgrade")
	ErrAlreadyClaimedToday = errors.New("daily bonus already claimed today")
	ErrOnCooldown          = errors.New("referral bonus on cooldown")
	ErrNotEnoughReferrals  = errors.New("not enough referrals")
	ErrSelfReferral        = errors.New("players cannot refer themselves")
)

// Infrastructure failures.
var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrMalformedRecord  = errors.New("malformed player record")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ReasonCode maps a gameplay error to the stable code clients switch on.
// Unknown errors map to "internal".
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientEnergy):
		return "insufficient_energy"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAlreadyOwned):
		return "already_owned"
	case errors.Is(err, ErrUnknownUpgrade):
		return "unknown_upgrade"
	case errors.Is(err, ErrAlreadyClaimedToday):
		return "already_claimed_today"
	case errors.Is(err, ErrOnCooldown):
		return "on_cooldown"
	case errors.Is(err, ErrNotEnoughReferrals):
		return "not_enough_referrals"
	case errors.Is(err, ErrSelfReferral):
		return "self_referral"
	case errors.Is(err, ErrPlayerNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}

// IsPreconditionError reports whether err is an expected gameplay rejection
// rather than an infrastructure failure.
func IsPreconditionError(err error) bool {
	for _, e := range []error{
		ErrInsufficientEnergy, ErrInsufficientFunds, ErrAlreadyOwned,
		ErrUnknownUpgrade, ErrAlreadyClaimedToday, ErrOnCooldown,
		ErrNotEnoughReferrals, ErrSelfReferral,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
