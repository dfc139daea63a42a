package config

import "time"

const (
	// Websocket pump tuning
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 4096
	SendBufferSize = 256

	// HistoryReplayLimit is how many recent messages a newly admitted
	// connection receives.
	HistoryReplayLimit = 50

	// ChatTokenCacheTTL bounds how long a resolved chat token stays in
	// Redis before the next resolution falls back to the database.
	ChatTokenCacheTTL = 15 * time.Minute
)
