package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string

	// Pipeline tunables. Zero means "use default".
	CommitQueueSize     int
	SubscriberQueueSize int
}

const (
	DefaultCommitQueueSize     = 256
	DefaultSubscriberQueueSize = 32
)

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("live-tally", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	// Pipeline tunables
	fs.IntVar(&cfg.CommitQueueSize, "commit-queue", 0, "Commit event queue size")
	fs.IntVar(&cfg.SubscriberQueueSize, "subscriber-queue", 0, "Per-subscriber outbound queue size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3320 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.CommitQueueSize == 0 {
		if s := os.Getenv("COMMIT_QUEUE_SIZE"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return Config{}, errors.New("invalid COMMIT_QUEUE_SIZE env variable")
			}
			cfg.CommitQueueSize = n
		} else {
			cfg.CommitQueueSize = DefaultCommitQueueSize
		}
	}
	if cfg.SubscriberQueueSize == 0 {
		if s := os.Getenv("SUBSCRIBER_QUEUE_SIZE"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return Config{}, errors.New("invalid SUBSCRIBER_QUEUE_SIZE env variable")
			}
			cfg.SubscriberQueueSize = n
		} else {
			cfg.SubscriberQueueSize = DefaultSubscriberQueueSize
		}
	}

	return cfg, nil
}
