package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/app"
	"github.com/abhisek/examsim/internal/bank"
	"github.com/abhisek/examsim/internal/config"
	"github.com/abhisek/examsim/internal/engine"
	"github.com/abhisek/examsim/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examsim",
	Short: "Terminal certification exam simulator",
	Long:  "Examsim — timed exam and practice sessions over a JSON question bank, with per-choice randomization and autosaved progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMSIM_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to question bank JSON file (overrides EXAMSIM_BANK env var)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration from flags and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dbFlag, _ := cmd.Flags().GetString("db")
	bankFlag, _ := cmd.Flags().GetString("bank")
	return config.Load(dbFlag, bankFlag)
}

// runApp wires the services and starts the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The bank is optional: a restored session carries its own questions.
	var qb *bank.Bank
	if cfg.BankPath != "" {
		qb, err = bank.LoadFile(cfg.BankPath)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "No question bank configured (--bank or EXAMSIM_BANK).")
		fmt.Fprintln(os.Stderr, "New sessions will be unavailable.")
	}

	repo := st.SessionRepo()
	eng := engine.New(repo, engine.NewTimerScheduler(), nil)
	eng.SetDebounce(cfg.Debounce)
	if err := eng.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	return app.Run(app.Options{
		Engine: eng,
		Bank:   qb,
		Repo:   repo,
	})
}
