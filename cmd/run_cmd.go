package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <job-id>",
		Short: "Run one scheduled job now and record its execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			start := time.Now()
			if err := application.RunJob(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("job %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s executed in %s\n", args[0], time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
