package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Scan holds configuration for the scan command.
type Scan struct {
	Chain
	FromBlock         uint64
	ToBlock           uint64
	Factories         []string
	BatchSize         uint64
	OutDir            string
	Checkpoint        string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
	SkipTimestamps    bool
	PGDSN             string
	StateName         string
}

// LoadScan merges config file, environment variables, and flags into Scan.
func LoadScan(cfgFile string, flags *pflag.FlagSet) (Scan, error) {
	chainCfg, err := LoadChain(cfgFile, flags)
	if err != nil {
		return Scan{}, err
	}
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"batch-size":         uint64(2000),
		"out":                "./data",
		"checkpoint":         "./data/checkpoint.json",
		"checkpoint-enabled": true,
		"max-retries":        5,
		"retry-backoff":      500 * time.Millisecond,
		"state-name":         "token-created",
	})
	if err != nil {
		return Scan{}, err
	}
	return Scan{
		Chain:             chainCfg,
		FromBlock:         v.GetUint64("from"),
		ToBlock:           v.GetUint64("to"),
		Factories:         getStringSlice(v, "factory"),
		BatchSize:         v.GetUint64("batch-size"),
		OutDir:            v.GetString("out"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
		SkipTimestamps:    v.GetBool("skip-timestamps"),
		PGDSN:             v.GetString("pg-dsn"),
		StateName:         v.GetString("state-name"),
	}, nil
}
