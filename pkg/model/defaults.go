package model

import (
	"time"
)

const (
	DefaultConcurrency     = 3
	DefaultConnectTimeout  = 15 * time.Second
	DefaultTimeout         = 30 * time.Second
	DefaultCacheTTL        = 24 * time.Hour
	DefaultRefreshSchedule = "@every 30m"
	DefaultUserAgent       = "footyfeed/1.0 (+https://github.com/gurinder1988/footyfeed)"

	DefaultLogMaxSize    = 50 // megabytes
	DefaultLogMaxAge     = 30 // days
	DefaultLogMaxBackups = 7
)
