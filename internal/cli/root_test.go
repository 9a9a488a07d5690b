package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfmount/pkg/config"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	want := []string{"solve", "render", "template", "calibrate", "parse", "favorites", "tui", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPreRunLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[layout]\nspacing = \"29 1/8\"\npolicy = \"nut-only\"\nshoe_size = 11\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	c.configPath = path
	cmd := &cobra.Command{Use: "solve"}
	cmd.SetContext(context.Background())
	if err := c.preRun(cmd, nil); err != nil {
		t.Fatalf("preRun: %v", err)
	}

	cfg := c.settings()
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Layout.Spacing != config.Inches(29.125) {
		t.Errorf("Layout.Spacing = %v, want 29.125", cfg.Layout.Spacing)
	}
	if len(cfg.Undecoded) != 1 {
		t.Errorf("Undecoded = %v, want one key", cfg.Undecoded)
	}
	if loggerFromContext(cmd.Context()) != c.Logger {
		t.Error("preRun should attach the CLI logger to the context")
	}
}

func TestPreRunMissingExplicitConfig(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.configPath = filepath.Join(t.TempDir(), "nope.toml")
	cmd := &cobra.Command{Use: "solve"}
	cmd.SetContext(context.Background())

	err := c.preRun(cmd, nil)
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("preRun error = %v, want INVALID_CONFIG", err)
	}
}

func TestPreRunSkipsConfigCommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.configPath = filepath.Join(t.TempDir(), "nope.toml")

	parent := &cobra.Command{Use: "config"}
	child := &cobra.Command{Use: "init"}
	parent.AddCommand(child)
	child.SetContext(context.Background())

	if err := c.preRun(child, nil); err != nil {
		t.Errorf("config init should not load the config: %v", err)
	}
	if c.cfg != nil {
		t.Error("cfg should stay unset")
	}
}

func TestSettingsDefaults(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	got := c.settings()
	if got.Layout.Spacing != config.Default().Layout.Spacing {
		t.Errorf("settings() without preRun = %v, want defaults", got.Layout.Spacing)
	}
}

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(io.Discard, log.InfoLevel)
	got, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(xdg, "shelfmount", "artifacts"); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}

	cfg := config.Default()
	cfg.Cache.Dir = "/srv/shelfmount"
	c.cfg = &cfg
	if got, _ := c.cacheDir(); got != "/srv/shelfmount" {
		t.Errorf("cacheDir() with [cache] dir = %q", got)
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	c := New(io.Discard, log.InfoLevel)
	c.noCache = true
	ch, err := c.newCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(interface{ Dir() string }); ok {
		t.Error("--no-cache should give a null cache")
	}

	c.noCache = false
	ch, err = c.newCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer ch.Close()
	if _, ok := ch.(interface{ Dir() string }); !ok {
		t.Errorf("default backend = %T, want file cache", ch)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", []string{"svg"}, false},
		{"svg", []string{"svg"}, false},
		{"SVG, webp", []string{"svg", "webp"}, false},
		{"pdf,,dxf", []string{"pdf", "dxf"}, false},
		{" , ", nil, true},
		{"svg,gif", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeInvalidFormat) {
					t.Errorf("error code = %s, want INVALID_FORMAT", errs.GetCode(err))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
