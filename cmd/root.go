package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/deliverysla-backend/internal/app"
)

type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCmd(opts)
	cmd := &cobra.Command{
		Use:           "deliverysla",
		Short:         "Deliverable SLA tracking, version rollover and notification scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", app.DefaultEnvFiles, "Env files to load when present")
	cmd.AddCommand(serve, newRunCmd(opts), newJobsCmd(opts))
	return cmd
}

func (o *rootOptions) open(ctx context.Context) (*app.App, error) {
	cfg, err := app.LoadConfig(o.envFiles)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
