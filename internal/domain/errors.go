package domain

import "errors"

// Stat line validation errors
var (
	ErrNegativeStat       = errors.New("counting stats must be non-negative")
	ErrInvalidMinutes     = errors.New("minutes played must be between 0 and 120")
	ErrInvalidCoachRating = errors.New("coach rating must be between 0 and 100")
)

// Roster errors
var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrPlayerNotOnTeam = errors.New("player does not belong to the match's team")
	ErrInvalidUserRole = errors.New("invalid user role")
)
