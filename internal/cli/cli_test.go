package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/observability"
)

// runCLI executes the root command with args in an isolated config and
// cache home and returns what it wrote to stdout.
func runCLI(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Cleanup(observability.Reset)

	var stdout, stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	c.darkBackground = func() bool { return true }

	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestCatalogCommand(t *testing.T) {
	home := t.TempDir()

	t.Run("stdout", func(t *testing.T) {
		out, err := runCLI(t, home, "catalog")
		if err != nil {
			t.Fatalf("catalog: %v", err)
		}
		g, err := graph.UnmarshalGraph([]byte(out))
		if err != nil {
			t.Fatalf("output is not graph JSON: %v", err)
		}
		if g.NodeCount() != 83 {
			t.Errorf("nodes = %d, want 83", g.NodeCount())
		}
	})

	t.Run("category to file", func(t *testing.T) {
		path := filepath.Join(home, "cloud.json")
		if _, err := runCLI(t, home, "catalog", "--category", "cloud", "-o", path); err != nil {
			t.Fatalf("catalog: %v", err)
		}
		g, err := graph.ReadGraphFile(path)
		if err != nil {
			t.Fatalf("ReadGraphFile: %v", err)
		}
		if g.NodeCount() == 0 || g.NodeCount() >= 83 {
			t.Errorf("cloud subgraph has %d nodes", g.NodeCount())
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := runCLI(t, home, "catalog", "--category", "cooking")
		if !errors.Is(err, errors.ErrCodeInvalidCategory) {
			t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidCategory)
		}
	})
}

func TestConfigCommands(t *testing.T) {
	home := t.TempDir()
	want := filepath.Join(home, "config", "skillgraph", "config.toml")

	out, err := runCLI(t, home, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := runCLI(t, home, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out, err = runCLI(t, home, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, section := range []string{"[view]", "[cache]", "[physics]"} {
		if !strings.Contains(out, section) {
			t.Errorf("config show missing %s", section)
		}
	}
}

func TestConfigInitExplicitPath(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "custom", "skillgraph.toml")

	if _, err := runCLI(t, home, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	_, err := runCLI(t, home, "--config", filepath.Join(home, "missing.toml"), "config", "show")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "bad.toml")
	if err := os.WriteFile(path, []byte("[view]\ntheme = \"sepia\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, home, "--config", path, "catalog")
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidTheme)
	}
}

func TestRenderCommand(t *testing.T) {
	home := t.TempDir()

	t.Run("json to stdout", func(t *testing.T) {
		out, err := runCLI(t, home, "render", "-f", "json", "-o", "-", "--theme", "auto")
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		snap, err := graph.UnmarshalSnapshot([]byte(out))
		if err != nil {
			t.Fatalf("output is not a snapshot: %v", err)
		}
		if len(snap.Nodes) != 83 {
			t.Errorf("nodes = %d, want 83", len(snap.Nodes))
		}
		if snap.Theme != "dark" {
			t.Errorf("theme = %q, want dark (auto on a dark terminal)", snap.Theme)
		}
	})

	t.Run("files then cached", func(t *testing.T) {
		base := filepath.Join(home, "out", "skills")
		out, err := runCLI(t, home, "render", "-f", "svg,json", "-o", base+".svg")
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		for _, ext := range []string{".svg", ".json"} {
			if _, err := os.Stat(base + ext); err != nil {
				t.Errorf("missing %s: %v", ext, err)
			}
		}
		if !strings.Contains(out, "fresh") {
			t.Errorf("first render not reported fresh:\n%s", out)
		}

		out, err = runCLI(t, home, "render", "-f", "svg,json", "-o", base)
		if err != nil {
			t.Fatalf("second render: %v", err)
		}
		if !strings.Contains(out, "cached") {
			t.Errorf("second render not reported cached:\n%s", out)
		}
	})

	t.Run("no cache", func(t *testing.T) {
		path := filepath.Join(home, "nocache.svg")
		out, err := runCLI(t, home, "render", "--no-cache", "--category", "test", "-o", path)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
			t.Errorf("not an svg: %.40q", data)
		}
		if strings.Contains(out, "cached") {
			t.Errorf("--no-cache render reported cached:\n%s", out)
		}
	})

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"stdout needs one format", []string{"render", "-f", "svg,json", "-o", "-"}, errors.ErrCodeInvalidInput},
		{"bad theme", []string{"render", "--theme", "sepia"}, errors.ErrCodeInvalidTheme},
		{"bad viewport", []string{"render", "--width", "-5"}, errors.ErrCodeInvalidViewport},
		{"missing input", []string{"render", "-i", filepath.Join(home, "nope.json")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, home, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, "cache", "skillgraph")

	out, err := runCLI(t, home, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}

	out, err = runCLI(t, home, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Errorf("clear on a fresh home: %q", out)
	}

	if _, err := runCLI(t, home, "render", "-f", "json", "-o", filepath.Join(home, "g.json")); err != nil {
		t.Fatalf("render: %v", err)
	}
	out, err = runCLI(t, home, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear after render: %q", out)
	}
}

func TestInspectCommand(t *testing.T) {
	home := t.TempDir()

	out, err := runCLI(t, home, "inspect", "--json", "--no-layout")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var rep inspectReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if rep.Nodes != 83 {
		t.Errorf("nodes = %d, want 83", rep.Nodes)
	}
	sum := 0
	for _, n := range rep.Categories {
		sum += n
	}
	if sum != rep.Nodes {
		t.Errorf("category counts sum to %d, want %d", sum, rep.Nodes)
	}
	if rep.Layout != nil {
		t.Error("--no-layout still ran the layout")
	}

	out, err = runCLI(t, home, "inspect", "--category", "knowledge")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Knowledge", "crossings", "settled"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the program")
	}
}
