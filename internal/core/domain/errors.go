package domain

import "errors"

// ============================================================================
// Campaign Errors
// ============================================================================

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidTitle        = errors.New("campaign title is required")
	ErrInvalidDescription  = errors.New("campaign description is required")
	ErrInvalidBTCAddress   = errors.New("invalid bitcoin address format")
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")
	ErrInvalidOwnerName    = errors.New("campaign owner is required")
	ErrInvalidDonation     = errors.New("donation amount must be greater than zero")
	ErrInvalidStatus       = errors.New("status must be Active, Funded or Closed")
)

// ============================================================================
// Similarity / Prediction Errors
// ============================================================================

var (
	// ErrModelUnavailable means the embedding backend could not be loaded or
	// reached. Similarity lookups degrade to an empty report on it.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrEmptyCorpus means there are no campaigns to compare or train against.
	ErrEmptyCorpus = errors.New("campaign corpus is empty")

	// ErrCorpusTooSmall and ErrSingleClassCorpus are training gates: training
	// is skipped, prior artifacts are kept, and no error reaches the caller.
	ErrCorpusTooSmall    = errors.New("not enough campaigns to train on (need at least 3)")
	ErrSingleClassCorpus = errors.New("training skipped: corpus has a single outcome class")

	// ErrModelNotTrained means no persisted artifact exists yet. This is the
	// normal pre-first-training state; prediction returns a neutral result.
	ErrModelNotTrained = errors.New("model not trained")
)
