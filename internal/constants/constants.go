package constants

import "time"

const (
	ReportTimeout   = 10 * time.Second
	DatabaseTimeout = 5 * time.Second
	ClientTimeout   = 5 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

const (
	// decimal places kept for avg_kills, winrate and damage in every encoding
	MetricPrecision = 2
	DateLayout      = "2006-01-02"
)

const (
	DefaultPollInterval = 5 * time.Second
	MaxRequestBodyBytes = 1 << 20
)
