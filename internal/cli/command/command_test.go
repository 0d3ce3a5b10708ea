package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

const testSchema = `
fields:
  - name: name
    kind: string
    required: true
  - name: address
    kind: string
    required: true
  - name: port
    kind: int
  - name: password
    kind: string
    secret: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

// run executes the CLI and returns stdout, stderr and the exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"envconfig"}, args...))
	code := 0
	if err != nil {
		code = 1
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			code = exit.ExitCode()
		}
		stderr.WriteString(err.Error())
	}
	return stdout.String(), stderr.String(), code
}

func TestApp(t *testing.T) {
	app := App()

	if app.Name != "envconfig" {
		t.Errorf("Name = %q, want %q", app.Name, "envconfig")
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"describe", "check", "version"} {
		if !names[name] {
			t.Errorf("missing command: %s", name)
		}
	}

	flags := make(map[string]bool)
	for _, f := range app.Flags {
		flags[f.Names()[0]] = true
	}
	for _, name := range []string{"output", "wide", "log-level", "log-format", "settings"} {
		if !flags[name] {
			t.Errorf("missing flag: %s", name)
		}
	}
}

func TestCheck_Success(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchema)
	configPath := writeFile(t, "config.toml", "name = \"svc\"\naddress = \"x\"\nport = 8080\n")
	t.Setenv("CHK_PORT", "9090")
	t.Setenv("CHK_PASSWORD", "hunter2hunter2")

	stdout, stderr, code := run(t, "-o", "json", "check", "--schema", schemaPath, "--env-prefix", "CHK_", configPath)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	var rows []struct {
		Field  string `json:"field"`
		Source string `json:"source"`
		Value  any    `json:"value"`
	}
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	if rows[2].Field != "port" || rows[2].Source != "env" || rows[2].Value != float64(9090) {
		t.Errorf("port row = %+v", rows[2])
	}
	if rows[0].Source != "file" {
		t.Errorf("name source = %q, want file", rows[0].Source)
	}
	if strings.Contains(stdout, "hunter2hunter2") {
		t.Errorf("secret printed:\n%s", stdout)
	}
}

func TestCheck_ReportsEveryProblem(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchema)
	t.Setenv("CHK2_PORT", "eighty")

	stdout, stderr, code := run(t, "check", "-s", schemaPath, "-p", "CHK2_")
	if code != exitInvalid {
		t.Fatalf("exit code = %d, want %d (stderr = %s)", code, exitInvalid, stderr)
	}

	for _, want := range []string{"name", "address", "port", "missing", "type"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stderr, "3 problems") {
		t.Errorf("stderr = %q, want problem count", stderr)
	}
}

func TestCheck_UnusableSources(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchema)
	badConfig := writeFile(t, "config.json", "{not json")

	tests := []struct {
		name string
		args []string
	}{
		{"missing schema file", []string{"check", "-s", filepath.Join(t.TempDir(), "none.yaml")}},
		{"missing config file", []string{"check", "-s", schemaPath, filepath.Join(t.TempDir(), "none.toml")}},
		{"malformed config", []string{"check", "-s", schemaPath, badConfig}},
		{"too many args", []string{"check", "-s", schemaPath, "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, tt.args...)
			if code != exitUnusable {
				t.Errorf("exit code = %d, want %d (stderr = %s)", code, exitUnusable, stderr)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchema)

	stdout, stderr, code := run(t, "describe", "--schema", schemaPath, "--env-prefix", "APP_")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), stdout)
	}
	if got := strings.Join(strings.Fields(lines[0]), " "); got != "NAME KIND REQUIRED ENV" {
		t.Errorf("header = %q", got)
	}
	if got := strings.Join(strings.Fields(lines[3]), " "); got != "port int no APP_PORT" {
		t.Errorf("port row = %q", got)
	}
}

func TestDescribe_YAML(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchema)

	stdout, _, code := run(t, "--output", "yaml", "describe", "-s", schemaPath)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"- name: name", "kind: string", "required: true", "env: PASSWORD", "secret: true"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestSettingsFile(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", testSchema)
	settings := writeFile(t, "cli.yaml", "output: json\nenv_prefix: SET_\n")

	stdout, _, code := run(t, "--settings", settings, "describe", "-s", schemaPath)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, `"env": "SET_NAME"`) {
		t.Errorf("settings not applied:\n%s", stdout)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, code := run(t, "-o", "xml", "version")
	if code != exitUnusable {
		t.Errorf("exit code = %d, want %d", code, exitUnusable)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, code := run(t, "-o", "json", "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, `"go_version"`) {
		t.Errorf("output = %s", stdout)
	}
}
