package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	cfg "github.com/goliatone/go-loginform/internal/config"
	"github.com/goliatone/go-loginform/pkg/controller"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := cfg.Load(&cobra.Command{}, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Mode() != controller.SubmitModePasswordGate {
		t.Fatalf("expected password gate by default, got %q", c.SubmitMode)
	}
	if c.RedirectDelay != 1800*time.Millisecond {
		t.Fatalf("unexpected redirect delay %s", c.RedirectDelay)
	}
	if c.SuccessPath != "/home/index.html" || c.Server.Addr != ":8080" || c.Log.Level != "info" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)

	file := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := "submit_mode: emailGate\nredirect_delay: 250ms\nserver:\n  addr: 127.0.0.1:9000\npage:\n  title: Garden\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := cfg.Load(&cobra.Command{}, file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Mode() != controller.SubmitModeEmailGate {
		t.Fatalf("expected email gate from file, got %q", c.SubmitMode)
	}
	if c.RedirectDelay != 250*time.Millisecond || c.Server.Addr != "127.0.0.1:9000" || c.Page.Title != "Garden" {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.SuccessPath != controller.SuccessPath {
		t.Fatalf("expected default success path to survive, got %q", c.SuccessPath)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := cfg.Load(&cobra.Command{}, missing); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	isolate(t)

	file := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(file, []byte("server:\n  addr: :7000\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("LOGINFORM_SERVER_ADDR", ":9999")
	t.Setenv("LOGINFORM_LOG_LEVEL", "debug")

	c, err := cfg.Load(&cobra.Command{}, file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":9999" || c.Log.Level != "debug" {
		t.Fatalf("env not applied: %+v", c)
	}
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("LOGINFORM_SUBMIT_MODE", "passwordGate")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("submit-mode", "", "")
	cmd.Flags().String("addr", "", "")
	if err := cmd.Flags().Set("submit-mode", "email"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c, err := cfg.Load(cmd, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Mode() != controller.SubmitModeEmailGate {
		t.Fatalf("expected flag to win, got %q", c.SubmitMode)
	}
}

func TestValidate(t *testing.T) {
	base := cfg.Config{SubmitMode: "passwordGate", SuccessPath: "/home/index.html"}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	bad := []cfg.Config{
		{SubmitMode: "magic", SuccessPath: "/"},
		{SubmitMode: "emailGate", SuccessPath: "/", RedirectDelay: -time.Second},
		{SubmitMode: "emailGate", SuccessPath: "  "},
	}
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, cfg.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %+v, got %v", c, err)
		}
	}
}

func TestDump_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)

	want := cfg.Config{
		SubmitMode:     "emailGate",
		RedirectDelay:  2 * time.Second,
		SuccessPath:    "/welcome",
		SuccessMessage: "Thanks!",
		Server:         cfg.Server{Addr: ":8081"},
		Log:            cfg.Log{Level: "warn"},
		Page:           cfg.Page{Title: "T", Heading: "H", Theme: "meadow"},
	}

	var buf bytes.Buffer
	if err := cfg.Dump(&buf, want); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "redirect_delay: 2s") {
		t.Fatalf("expected human readable duration, got:\n%s", buf.String())
	}

	file := filepath.Join(t.TempDir(), "sub", "loginform.yaml")
	if err := cfg.WriteConfigFile(want, file); err != nil {
		t.Fatalf("write config: %v", err)
	}
	got, err := cfg.Load(&cobra.Command{}, file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
