package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plaide-ai/intake/internal/analysis"
)

var analyzeTimeout time.Duration

var analyzeCmd = &cobra.Command{
	Use:   "analyze <case-id>",
	Short: "Run the evidence analysis for a case and wait for it to finish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID := args[0]

		// The poller has no hard timeout of its own; the caller imposes one
		// by cancelling.
		if analyzeTimeout > 0 {
			timer := time.AfterFunc(analyzeTimeout, func() {
				a.poller.Cancel(caseID)
			})
			defer timer.Stop()
		}

		err := a.poller.Start(cmd.Context(), caseID, func(p analysis.Progress) {
			fmt.Printf("\r%3d%%  %s", p.Progress, p.CurrentStep)
		})
		fmt.Println()
		if err != nil {
			return err
		}

		if c := a.store.CurrentCase(); c != nil && c.Synthesis != nil {
			fmt.Printf("Analysis complete. Synthesis:\n%s\n", c.Synthesis.Summary)
		} else {
			fmt.Println("Analysis complete.")
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "cancel polling after this duration (0 = wait forever)")
}
