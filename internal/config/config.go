// Package config resolves runtime settings from flags, environment, and an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/examsim/internal/engine"
	"github.com/abhisek/examsim/internal/store"
)

// Config carries resolved application settings.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// BankPath is the question bank JSON file. May be empty: the app can
	// still resume a persisted session, which embeds its questions.
	BankPath string

	// Debounce is the autosave quiet window.
	Debounce time.Duration
}

// Load resolves configuration. Flag values take priority over environment
// variables; a .env file in the working directory is loaded first if
// present.
func Load(dbFlag, bankFlag string) (*Config, error) {
	// Load .env file if it exists.
	_ = godotenv.Load()

	cfg := &Config{
		BankPath: bankFlag,
		Debounce: engine.DefaultDebounce,
	}

	if cfg.BankPath == "" {
		cfg.BankPath = os.Getenv("EXAMSIM_BANK")
	}

	if dbFlag != "" {
		cfg.DBPath = dbFlag
		if err := store.EnsureDir(dbFlag); err != nil {
			return nil, err
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}

	if v := os.Getenv("EXAMSIM_AUTOSAVE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.Debounce = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg, nil
}
