package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// MaxSeasonDepth bounds how far back a previous_league_id chain is walked.
	MaxSeasonDepth = 25
	MinWeek        = 1
	MaxWeek        = 18
)

const (
	BreakerMaxRequests  = 3
	BreakerInterval     = 60 * time.Second
	BreakerOpenTimeout  = 30 * time.Second
	BreakerMinRequests  = 5
	BreakerFailureRatio = 0.6
)
