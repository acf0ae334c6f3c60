// Command loginform serves, renders and drives the login form from the
// command line.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-loginform/internal/config"
	"github.com/goliatone/go-loginform/internal/logging"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

// app carries state resolved once in the root pre-run.
type app struct {
	cfgFile string
	cfg     config.Config
}

// newRootCmd builds a fresh command tree so tests can execute commands in
// isolation.
func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "loginform",
		Short: "Login form page, dev server and terminal host.",
		Long: `loginform renders the eco login page, serves it together with the
WebAssembly controller, or fills it in from the terminal using the same
controller logic the browser runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd, a.cfgFile)
			if err != nil {
				return err
			}
			if err := logging.Configure(cmd.ErrOrStderr(), c.Log.Level); err != nil {
				return err
			}
			a.cfg = c
			logging.Debugf("config loaded (mode=%s)", c.Mode())
			return nil
		},
	}
	cmd.Version = version

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is loginform.yaml in the user config dir or ./)")
	flags.String("submit-mode", "", `submit behaviour ("passwordGate" or "emailGate")`)
	flags.Duration("redirect-delay", 0, "delay before the password gate redirects")
	flags.String("success-path", "", "redirect target after a successful sign in")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("theme-file", "", "YAML go-theme manifest")
	flags.String("theme", "", "expected theme name in the manifest")
	flags.String("theme-variant", "", "theme variant")
	flags.String("templates-dir", "", "directory overriding the embedded page templates")

	cmd.AddCommand(
		newServeCmd(a),
		newPromptCmd(a),
		newRenderCmd(a),
		newConfigCmd(a),
	)
	return cmd
}
