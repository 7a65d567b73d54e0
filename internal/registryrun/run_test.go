package registryrun_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"leo/internal/config"
	"leo/internal/hierarchy"
	"leo/internal/registryrun"
	"leo/internal/sink"
	"leo/internal/testsupport"
)

const hierarchyConfig = `
[[loggers]]
name = "app"

[[loggers]]
name = "app.db"
propagate = false

[[loggers]]
name = "root"
[loggers.sinks.memory]
`

func TestBuildAddsDeclaredLoggers(t *testing.T) {
	cfg := testsupport.LoadConfig(t, hierarchyConfig)
	traces := map[string]*sink.MemorySink{}
	reg, err := registryrun.Build(cfg, registryrun.Options{
		Attach: func(name string) []hierarchy.AddOption {
			traces[name] = sink.NewMemory()
			return []hierarchy.AddOption{hierarchy.WithSink("trace", traces[name])}
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer reg.Close()

	if got, want := reg.Names(), []string{"app", "app.db", "root"}; !slices.Equal(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	chains := reg.Chains()
	if got := chains["app.db"]; len(got) != 0 {
		t.Fatalf("app.db chain = %v, want empty", got)
	}
	if got := chains["app"]; !slices.Equal(got, []string{"root"}) {
		t.Fatalf("app chain = %v", got)
	}

	ctx := context.Background()
	db, _ := reg.Get("app.db")
	if err := db.Info(ctx, "query", nil); err != nil {
		t.Fatalf("Info: %v", err)
	}
	app, _ := reg.Get("app")
	if err := app.Warn(ctx, "slow", nil); err != nil {
		t.Fatalf("Warn: %v", err)
	}

	if got := traces["app.db"].Lines(); !slices.Equal(got, []string{"info: [app.db] query"}) {
		t.Fatalf("app.db trace = %v", got)
	}
	if got := traces["root"].Lines(); !slices.Equal(got, []string{"warn: [app] slow"}) {
		t.Fatalf("root trace = %v", got)
	}
}

func TestBuildWithoutDecoration(t *testing.T) {
	cfg := testsupport.LoadConfig(t, "[registry]\ndecorate = false\n"+hierarchyConfig)
	trace := sink.NewMemory()
	reg, err := registryrun.Build(cfg, registryrun.Options{
		Attach: func(name string) []hierarchy.AddOption {
			if name != hierarchy.RootName {
				return nil
			}
			return []hierarchy.AddOption{hierarchy.WithSink("trace", trace)}
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer reg.Close()

	app, _ := reg.Get("app")
	if err := app.Error(context.Background(), "boom", nil); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if got := trace.Lines(); !slices.Equal(got, []string{"error: boom"}) {
		t.Fatalf("trace = %v", got)
	}
}

func TestBuildFailsOnUnbuildableSink(t *testing.T) {
	cfg := testsupport.LoadConfig(t, "[[loggers]]\nname = \"root\"\n[loggers.sinks.stream]\n")
	_, err := registryrun.Build(cfg, registryrun.Options{})
	if err == nil {
		t.Fatal("expected stream sink without a hub to fail")
	}
}

func TestBuildRequiresConfig(t *testing.T) {
	if _, err := registryrun.Build(nil, registryrun.Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestVerbosestLevel(t *testing.T) {
	tests := []struct {
		level     string
		overrides map[string]string
		want      string
	}{
		{"info", nil, "info"},
		{"warn", map[string]string{"registry": "debug"}, "debug"},
		{"debug", map[string]string{"registry": "error"}, "debug"},
		{"error", map[string]string{"a": "warn", "b": "info"}, "info"},
	}
	for _, tc := range tests {
		if got := registryrun.VerbosestLevel(tc.level, tc.overrides); got != tc.want {
			t.Errorf("VerbosestLevel(%q, %v) = %q, want %q", tc.level, tc.overrides, got, tc.want)
		}
	}
}

func TestNewLoggerHonorsScopedLevels(t *testing.T) {
	cfg := config.Default()
	logPath := filepath.Join(t.TempDir(), "leo.log")
	cfg.Logging.File = logPath
	cfg.Logging.Level = "error"
	cfg.Logging.ComponentLevels = map[string]string{"registry": "debug"}

	base, err := registryrun.NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	registryrun.Scoped(base, &cfg, "cli").Info("dropped")
	registryrun.Scoped(base, &cfg, "registry").Debug("kept")

	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := string(raw); !strings.Contains(got, "kept") || strings.Contains(got, "dropped") {
		t.Fatalf("unexpected log contents %q", got)
	}
}
