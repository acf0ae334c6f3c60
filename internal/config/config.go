package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-loginform/pkg/controller"
)

// EnvPrefix is prepended to every environment override, with dots in keys
// replaced by underscores: LOGINFORM_SERVER_ADDR.
const EnvPrefix = "loginform"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	SubmitMode     string        `mapstructure:"submit_mode" yaml:"submit_mode"`
	RedirectDelay  time.Duration `mapstructure:"redirect_delay" yaml:"redirect_delay"`
	SuccessPath    string        `mapstructure:"success_path" yaml:"success_path"`
	SuccessMessage string        `mapstructure:"success_message" yaml:"success_message"`
	Server         Server        `mapstructure:"server" yaml:"server"`
	Log            Log           `mapstructure:"log" yaml:"log"`
	Page           Page          `mapstructure:"page" yaml:"page"`
}

type Server struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	WasmDir string `mapstructure:"wasm_dir" yaml:"wasm_dir"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type Page struct {
	Title        string `mapstructure:"title" yaml:"title"`
	Heading      string `mapstructure:"heading" yaml:"heading"`
	Icon         string `mapstructure:"icon" yaml:"icon,omitempty"`
	Theme        string `mapstructure:"theme" yaml:"theme,omitempty"`
	ThemeVariant string `mapstructure:"theme_variant" yaml:"theme_variant,omitempty"`
	ThemeFile    string `mapstructure:"theme_file" yaml:"theme_file,omitempty"`
	TemplatesDir string `mapstructure:"templates_dir" yaml:"templates_dir,omitempty"`
}

// Defaults returns the baseline values applied before any file, env or
// flag source.
func Defaults() map[string]any {
	return map[string]any{
		"submit_mode":        controller.SubmitModePasswordGate.String(),
		"redirect_delay":     controller.RedirectDelay,
		"success_path":       controller.SuccessPath,
		"success_message":    controller.SuccessMessage,
		"server.addr":        ":8080",
		"server.wasm_dir":    "",
		"log.level":          "info",
		"page.title":         "Sign in",
		"page.heading":       "Welcome back",
		"page.icon":          "",
		"page.theme":         "",
		"page.theme_variant": "",
		"page.theme_file":    "",
		"page.templates_dir": "",
	}
}

// FlagKeys maps CLI flag names to configuration keys. Only flags present on
// the command are bound.
var FlagKeys = map[string]string{
	"submit-mode":    "submit_mode",
	"redirect-delay": "redirect_delay",
	"success-path":   "success_path",
	"addr":           "server.addr",
	"wasm-dir":       "server.wasm_dir",
	"log-level":      "log.level",
	"theme":          "page.theme",
	"theme-variant":  "page.theme_variant",
	"theme-file":     "page.theme_file",
	"templates-dir":  "page.templates_dir",
}

// ConfigPath returns the per-user location of loginform.yaml.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "loginform", "loginform.yaml"), nil
}

// LoadConfig resolves T from defaults, then loginform.yaml (user config dir,
// working directory, or the explicit path), then LOGINFORM_* variables, then
// flags set on cmd.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("loginform")
	v.SetConfigType("yaml")
	explicit := configFile != nil && strings.TrimSpace(*configFile) != ""
	if explicit {
		v.SetConfigFile(*configFile)
	} else {
		if userConfigPath, err := ConfigPath(); err == nil {
			v.AddConfigPath(filepath.Dir(userConfigPath))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		for flag, key := range FlagKeys {
			if f := cmd.Flags().Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Load is LoadConfig for Config with Defaults, followed by Validate.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	c, err := LoadConfig[Config](cmd, Defaults(), &configFile)
	if err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Validate checks the values the controller depends on.
func (c Config) Validate() error {
	if _, err := controller.ParseSubmitMode(c.SubmitMode); err != nil {
		return fmt.Errorf("%w: submit_mode: %v", ErrInvalidConfig, err)
	}
	if c.RedirectDelay < 0 {
		return fmt.Errorf("%w: redirect_delay must not be negative", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.SuccessPath) == "" {
		return fmt.Errorf("%w: success_path is required", ErrInvalidConfig)
	}
	return nil
}

// Mode returns the parsed submit mode, falling back to the password gate.
func (c Config) Mode() controller.SubmitMode {
	mode, err := controller.ParseSubmitMode(c.SubmitMode)
	if err != nil {
		return controller.SubmitModePasswordGate
	}
	return mode
}

// Dump writes c as YAML.
func Dump(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// WriteConfigFile stores c at path, creating parent directories.
func WriteConfigFile(c Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := Dump(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
