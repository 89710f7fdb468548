package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/report"
	"github.com/abhisek/examsim/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [n]",
	Short: "Print the examination report for a completed session",
	Long:  "Prints the text report for the most recent completed session, or the n-th most recent when n is given (1 = latest).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		sessions, err := st.SessionRepo().ListCompleted(ctx)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no completed sessions")
		}

		nth := 1
		if len(args) == 1 {
			if nth, err = strconv.Atoi(args[0]); err != nil || nth < 1 {
				return fmt.Errorf("invalid session index %q", args[0])
			}
		}
		if nth > len(sessions) {
			return fmt.Errorf("only %d completed sessions", len(sessions))
		}
		cs := sessions[len(sessions)-nth]

		text, err := report.Generate(cs)
		if err != nil {
			return fmt.Errorf("generate report: %w", err)
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Println("Report saved to", out)
			return nil
		}

		fmt.Println(text)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "", "Write the report to a file instead of stdout")
}
