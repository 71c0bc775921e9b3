package config

import "time"

// Default knobs for the polling and betting engine. Every value can be
// overridden through the corresponding environment variable.
const (
	DefaultPollInterval = 90 * time.Second
	DefaultPollThrottle = 500 * time.Millisecond

	DefaultBettingWindow   = 3 * time.Minute
	DefaultMinStake        = int64(100)
	DefaultStartingBalance = int64(1000)
	DefaultMaxTrackedGames = 3
	DefaultResultDeadline  = 2 * time.Hour

	DefaultMultiplierMin = 1.20
	DefaultMultiplierMax = 2.50

	DefaultEventRetentionDays = 90
)
