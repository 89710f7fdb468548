package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examsim/internal/bank"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bank.json>",
	Short: "Validate a question bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qb, err := bank.LoadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d questions OK\n", args[0], qb.Len())
		for _, d := range bank.Difficulties {
			fmt.Printf("  %-8s %d\n", d, len(qb.ByDifficulty(d)))
		}
		return nil
	},
}
