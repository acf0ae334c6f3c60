package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-loginform/internal/logging"
	"github.com/goliatone/go-loginform/internal/terminal"
)

func newPromptCmd(a *app) *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the login form from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := buildRenderer(a.cfg, false)
			if err != nil {
				return err
			}
			session, err := terminal.NewSession(renderer,
				terminal.WithControllerOptions(controllerOptions(a.cfg)...),
				terminal.WithMaxAttempts(attempts),
				terminal.WithLogger(logging.For("terminal")),
			)
			if err != nil {
				return err
			}

			outcome, err := session.Run(cmd.Context())
			if errors.Is(err, terminal.ErrAborted) {
				logging.Infof("aborted after %d attempt(s)", outcome.Attempts)
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", terminal.DefaultMaxAttempts, "maximum submit attempts")
	return cmd
}
