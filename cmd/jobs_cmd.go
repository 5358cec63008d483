package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
)

func newJobsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the persistent job store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			jobs, err := application.Repos.SchedulerJob.List(dbctx.New(cmd.Context()))
			if err != nil {
				return err
			}
			return writeJobs(cmd.OutOrStdout(), jobs, application.Cfg.Location())
		},
	}
}

func writeJobs(out io.Writer, jobs []*types.SchedulerJob, loc *time.Location) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCRON\tNEXT RUN")
	for _, j := range jobs {
		next := "-"
		if j.NextRunTime != nil {
			next = j.NextRunTime.In(loc).Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", j.ID, j.CronSpec, next)
	}
	return w.Flush()
}
