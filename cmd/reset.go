package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the active session and all history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete data without --yes")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.SessionRepo().Reset(ctx); err != nil {
			return err
		}
		fmt.Println("All session data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
