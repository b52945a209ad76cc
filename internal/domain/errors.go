package domain

import "errors"

// Draft errors
var (
	ErrInvalidSlot     = errors.New("slot index out of range")
	ErrHeroUnavailable = errors.New("hero is already picked or banned")
	ErrInvalidTeam     = errors.New("team must be 1 or 2")
	ErrInvalidHero     = errors.New("hero name is required")
	ErrInvalidFormat   = errors.New("invalid draft format")
	ErrInvalidRole     = errors.New("invalid role")
	ErrDraftComplete   = errors.New("draft is already complete")
)

// Catalog errors
var (
	ErrMalformedRecord = errors.New("malformed match record")
	ErrHeroNotFound    = errors.New("hero not found")
	ErrHeroExists      = errors.New("hero already exists")
	ErrMatchNotFound   = errors.New("match not found")
)
