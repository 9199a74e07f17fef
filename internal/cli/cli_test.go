package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yacchi/kasane"
)

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"default.yaml":    "server:\n  host: localhost\n  port: 8080\nservers:\n  - name: a\n    weight: 3\n  - name: b\n    weight: 8\n",
		"local.json":      `{"server":{"port":9000}}`,
		"production.yaml": "server:\n  host: prod.example.com\n",
		"staging.toml":    "[server]\nhost = \"staging.example.com\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "")
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestShow(t *testing.T) {
	dir := setupDir(t)

	t.Run("yaml", func(t *testing.T) {
		out, _, err := run(t, "show", "--dir", dir, "--env", "production")
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		for _, want := range []string{"host: prod.example.com", "port: 9000"} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q does not contain %q", out, want)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "show", "-d", dir, "--format", "json")
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		if !strings.Contains(out, `"server":{"host":"localhost","port":9000}`) {
			t.Errorf("output = %q", out)
		}
		if !strings.HasSuffix(out, "\n") {
			t.Error("output should end with a newline")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "show", "--dir", dir, "--format", "ini")
		if !errors.Is(err, kasane.ErrUnsupportedFormat) {
			t.Errorf("show error = %v, want ErrUnsupportedFormat", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, _, err := run(t, "show", "--dir", filepath.Join(dir, "missing"))
		if !errors.Is(err, kasane.ErrPathNotFound) {
			t.Errorf("show error = %v, want ErrPathNotFound", err)
		}
	})

	t.Run("optional formats", func(t *testing.T) {
		out, _, err := run(t, "show", "--dir", dir, "--env", "staging", "--with-formats", "toml")
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		if !strings.Contains(out, "host: staging.example.com") {
			t.Errorf("output = %q", out)
		}

		out, _, err = run(t, "show", "--dir", dir, "--env", "staging")
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		if strings.Contains(out, "staging.example.com") {
			t.Errorf("toml file should be inert without --with-formats, got %q", out)
		}
	})

	t.Run("unknown optional format", func(t *testing.T) {
		_, _, err := run(t, "show", "--dir", dir, "--with-formats", "ini")
		if !errors.Is(err, kasane.ErrUnsupportedFormat) {
			t.Errorf("show error = %v, want ErrUnsupportedFormat", err)
		}
	})
}

func TestQuery(t *testing.T) {
	dir := setupDir(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "scalar",
			args: []string{"query", "--dir", dir, "server.port"},
			want: "9000\n",
		},
		{
			name: "string is printed raw",
			args: []string{"query", "--dir", dir, "server.host"},
			want: "localhost\n",
		},
		{
			name: "jsonpath filter",
			args: []string{"query", "--dir", dir, "$.servers[?(@.weight > 5)].name"},
			want: "b\n",
		},
		{
			name: "mapping as JSON",
			args: []string{"query", "--dir", dir, "--env", "production", "server"},
			want: `{"host":"prod.example.com","port":9000}` + "\n",
		},
		{
			name: "expr engine",
			args: []string{"query", "--dir", dir, "--engine", "expr", "server.port > 8000"},
			want: "true\n",
		},
		{
			name: "pointer engine",
			args: []string{"query", "--dir", dir, "--engine", "pointer", "/servers/1/name"},
			want: "b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("query error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	t.Run("no match", func(t *testing.T) {
		_, _, err := run(t, "query", "--dir", dir, "server.missing")
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("query error = %v, want ErrNoMatch", err)
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		_, _, err := run(t, "query", "--dir", dir, "--engine", "jq", "server")
		if err == nil || !strings.Contains(err.Error(), "unknown query engine") {
			t.Errorf("query error = %v, want unknown query engine", err)
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		if _, _, err := run(t, "query", "--dir", dir); err == nil {
			t.Error("query without expression should fail")
		}
	})
}

func TestSave(t *testing.T) {
	dir := setupDir(t)

	out, _, err := run(t, "save", "--dir", dir, "--env", "qa", "--format", "json")
	if err != nil {
		t.Fatalf("save error = %v", err)
	}
	if !strings.Contains(out, "saved qa configuration (json)") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "qa.json"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"port":9000`) {
		t.Errorf("qa.json = %q", data)
	}
}

func TestEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		out, _, err := run(t, "env")
		if err != nil {
			t.Fatalf("env error = %v", err)
		}
		if out != kasane.DefaultEnvironment+"\n" {
			t.Errorf("output = %q, want %q", out, kasane.DefaultEnvironment+"\n")
		}
	})

	t.Run("flag", func(t *testing.T) {
		out, _, err := run(t, "env", "--env", "production")
		if err != nil {
			t.Fatalf("env error = %v", err)
		}
		if out != "production\n" {
			t.Errorf("output = %q, want production", out)
		}
	})

	t.Run("prefix", func(t *testing.T) {
		t.Setenv("MYAPP_ENV", "staging")
		out, _, err := run(t, "env", "--env-prefix", "MYAPP_")
		if err != nil {
			t.Fatalf("env error = %v", err)
		}
		if out != "staging\n" {
			t.Errorf("output = %q, want staging", out)
		}
	})
}

func TestLayers(t *testing.T) {
	dir := setupDir(t)

	out, _, err := run(t, "layers", "--dir", dir, "--env", "production")
	if err != nil {
		t.Fatalf("layers error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), out)
	}
	wantOrder := []string{"default.yaml", "local.json", "production.yaml"}
	for i, name := range wantOrder {
		if !strings.HasSuffix(lines[i+1], name) {
			t.Errorf("line %d = %q, want suffix %q", i+1, lines[i+1], name)
		}
	}
}

func TestLogLevel(t *testing.T) {
	dir := setupDir(t)

	t.Run("debug output goes to stderr", func(t *testing.T) {
		out, errOut, err := run(t, "show", "--dir", dir, "--log-level", "debug")
		if err != nil {
			t.Fatalf("show error = %v", err)
		}
		if !strings.Contains(errOut, "merged configuration layer") {
			t.Errorf("stderr = %q, want debug output", errOut)
		}
		if strings.Contains(out, "merged configuration layer") {
			t.Error("debug output should not reach stdout")
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		_, _, err := run(t, "show", "--dir", dir, "--log-level", "loud")
		if err == nil || !strings.Contains(err.Error(), "invalid log level") {
			t.Errorf("show error = %v, want invalid log level", err)
		}
	})
}

func TestEnvironmentDefaults(t *testing.T) {
	dir := setupDir(t)

	t.Run("variables fill unset flags", func(t *testing.T) {
		t.Setenv("KASANE_DIR", dir)
		t.Setenv("KASANE_ENV", "production")

		out, _, err := run(t, "query", "server.host")
		if err != nil {
			t.Fatalf("query error = %v", err)
		}
		if out != "prod.example.com\n" {
			t.Errorf("output = %q, want prod.example.com", out)
		}
	})

	t.Run("flags win over variables", func(t *testing.T) {
		t.Setenv("KASANE_DIR", filepath.Join(dir, "missing"))
		t.Setenv("KASANE_ENV", "production")

		out, _, err := run(t, "query", "--dir", dir, "--env", "development", "server.host")
		if err != nil {
			t.Fatalf("query error = %v", err)
		}
		if out != "localhost\n" {
			t.Errorf("output = %q, want localhost", out)
		}
	})
}
