package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RassulYunussov/forgeclient"
	"github.com/RassulYunussov/forgeclient/common"
	"github.com/RassulYunussov/forgeclient/internal/config"
)

func main() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:           "closed-pulls",
		Short:         "List the closed pull requests of the repository configured by the CI environment",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := config.NewLogger(errOut, debug)
			cfg, err := config.Load()
			if err != nil {
				logger.Error().Err(err).Msg("invalid environment")
				return err
			}
			executor := forgeclient.Create(0, forgeclient.WithLogger(logger))
			return run(cmd.Context(), cfg, executor, out, logger)
		},
	}
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")
	return cmd
}

func run(ctx context.Context, cfg config.Config, executor forgeclient.Executor, out io.Writer, logger zerolog.Logger) error {
	url := cfg.ClosedPullsURL()
	logger.Info().Str("url", url).Msg("requesting closed pull requests")
	resp, err := executor.Execute(ctx, common.NewRequestSpec(url, common.WithHeaders(cfg.AuthHeaders())))
	if err != nil {
		event := logger.Error().Err(err)
		var httpErr *forgeclient.HttpError
		if errors.As(err, &httpErr) {
			event = event.
				Str("kind", httpErr.Kind.String()).
				Int("status", httpErr.StatusCode).
				Bytes("body", httpErr.Body)
		}
		event.Msg("request failed")
		return err
	}
	return printResponse(out, resp)
}
