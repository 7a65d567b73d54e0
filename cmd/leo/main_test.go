package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"leo/internal/hierarchy"
	"leo/internal/logging"
	"leo/internal/testsupport"
)

const baseConfig = `
[logging]
level = "error"

[[loggers]]
name = "root"
[loggers.sinks.memory]

[[loggers]]
name = "app"

[[loggers]]
name = "app.db"
`

func TestChainsJSON(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, baseConfig+`
[[loggers]]
name = "app.db.pool"

[[loggers]]
name = "jobs"
propagate = false
`)

	out, _, err := runCLI(t, []string{"chains", "--json"}, path)
	if err != nil {
		t.Fatalf("chains: %v", err)
	}
	var rows []chainRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	got := map[string][]string{}
	for _, row := range rows {
		got[row.Logger] = row.Chain
	}
	want := map[string][]string{
		"root":        {},
		"app":         {"root"},
		"app.db":      {"app", "root"},
		"app.db.pool": {"app.db", "app", "root"},
		"jobs":        {},
	}
	for name, chain := range want {
		if !slices.Equal(got[name], chain) {
			t.Errorf("chain[%s] = %v, want %v", name, got[name], chain)
		}
	}
}

func TestChainsTable(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, baseConfig)

	out, _, err := runCLI(t, []string{"chains"}, path)
	if err != nil {
		t.Fatalf("chains: %v", err)
	}
	requireContains(t, out, "app.db")
	requireContains(t, out, "app → root")
	requireContains(t, out, "console, memory")
}

func TestChainsReportsDisabledPropagation(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, "[registry]\npropagate = false\n"+baseConfig)

	out, _, err := runCLI(t, []string{"chains"}, path)
	if err != nil {
		t.Fatalf("chains: %v", err)
	}
	requireContains(t, out, "Propagation is disabled")
}

func TestChainsRejectsMissingRoot(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, "[[loggers]]\nname = \"app\"\n")

	if _, _, err := runCLI(t, []string{"chains"}, path); err == nil {
		t.Fatal("expected validation error for missing root")
	}
}

func emitJSON(t *testing.T, path string, args ...string) []logging.LogEvent {
	t.Helper()
	out, _, err := runCLI(t, append([]string{"emit", "--json"}, args...), path)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	var events []logging.LogEvent
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	return events
}

func TestEmitTracesForwarding(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, baseConfig)

	events := emitJSON(t, path, "app.db.pool", "hello", "--level", "warn", "--meta", "user=jane")
	var loggers []string
	for _, evt := range events {
		loggers = append(loggers, evt.Logger)
		if evt.Message != "[app.db.pool] hello" {
			t.Errorf("%s received %q", evt.Logger, evt.Message)
		}
		if evt.Level != "warn" || evt.Origin != "app.db.pool" || evt.Fields["user"] != "jane" {
			t.Errorf("unexpected event %+v", evt)
		}
		if evt.EventID != events[0].EventID {
			t.Errorf("event id changed across hops: %s vs %s", evt.EventID, events[0].EventID)
		}
	}
	if want := []string{"app.db.pool", "app.db", "app", "root"}; !slices.Equal(loggers, want) {
		t.Fatalf("delivery order = %v, want %v", loggers, want)
	}
}

func TestEmitStopsAtNonPropagatingLogger(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, `
[[loggers]]
name = "root"

[[loggers]]
name = "app"

[[loggers]]
name = "app.db"
propagate = false
`)

	events := emitJSON(t, path, "app.db", "query")
	if len(events) != 1 || events[0].Logger != "app.db" {
		t.Fatalf("expected delivery to app.db only, got %+v", events)
	}
}

func TestEmitTable(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, baseConfig)

	out, _, err := runCLI(t, []string{"emit", "app", "started"}, path)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	requireContains(t, out, "[app] started")
	requireContains(t, out, "root")
}

func TestEmitRejectsUnknownLevel(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, baseConfig)

	_, _, err := runCLI(t, []string{"emit", "app", "x", "--level", "trace"}, path)
	if !errors.Is(err, hierarchy.ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestEmitRejectsBadMeta(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, baseConfig)

	if _, _, err := runCLI(t, []string{"emit", "app", "x", "--meta", "novalue"}, path); err == nil {
		t.Fatal("expected error for malformed --meta")
	}
}

func TestLevelsCustomMap(t *testing.T) {
	setupHome(t)
	path := testsupport.WriteConfig(t, `
[registry.levels]
crit = 0
notice = 1

[[loggers]]
name = "root"
`)

	out, _, err := runCLI(t, []string{"levels"}, path)
	if err != nil {
		t.Fatalf("levels: %v", err)
	}
	requireContains(t, out, "crit")
	requireContains(t, out, "notice")
	requireNotContains(t, out, "silly")
}

func TestConfigInitAndValidate(t *testing.T) {
	setupHome(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestParseMeta(t *testing.T) {
	meta, err := parseMeta([]string{"a=1", "b=x=y"})
	if err != nil {
		t.Fatalf("parseMeta: %v", err)
	}
	if meta["a"] != "1" || meta["b"] != "x=y" {
		t.Fatalf("unexpected meta %v", meta)
	}
	if meta, err := parseMeta(nil); err != nil || meta != nil {
		t.Fatalf("expected nil meta, got %v %v", meta, err)
	}
}
