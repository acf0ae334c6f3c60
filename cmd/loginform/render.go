package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-loginform/pkg/page"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output string
		which  string
		email  string
		wasm   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the login or landing page as static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := buildRenderer(a.cfg, wasm)
			if err != nil {
				return err
			}

			var html []byte
			switch which {
			case "login":
				html, err = renderer.RenderLogin(cmd.Context(), page.LoginData{Email: email})
			case "home":
				html, err = renderer.RenderHome(cmd.Context())
			default:
				return fmt.Errorf("unknown page %q (want login or home)", which)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Page written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&which, "page", "login", `page to render ("login" or "home")`)
	cmd.Flags().StringVar(&email, "email", "", "prefill the email field")
	cmd.Flags().BoolVar(&wasm, "wasm", true, "include the wasm loader script")
	return cmd
}
