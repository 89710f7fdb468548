package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/session"
	"github.com/abhisek/examsim/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed sessions",
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
			fmt.Println("No completed sessions.")
			return nil
		}

		fmt.Printf("%-24s %-9s %-8s %-9s %s\n", "DATE", "MODE", "SCORE", "PERCENT", "DURATION")
		for i := len(sessions) - 1; i >= 0; i-- {
			cs := sessions[i]
			mode := "Practice"
			if cs.Mode == session.ModeExam {
				mode = "Exam"
			}
			d := cs.Duration()
			fmt.Printf("%-24s %-9s %3d/%-4d %7.1f%%  %d:%02d\n",
				cs.EndedAt().Format("Jan 02, 2006 3:04 PM"),
				mode,
				cs.Score, cs.TotalQuestions,
				cs.Percentage(),
				int(d.Minutes()), int(d.Seconds())%60)
		}
		return nil
	},
}
