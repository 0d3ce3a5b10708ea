package confloader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.yaml", FormatYAML},
		{"config.YML", FormatYAML},
		{"/etc/app/config.json", FormatJSON},
		{"settings.toml", FormatTOML},
		{"settings.tml", FormatTOML},
		{"config", FormatYAML},
		{"config.conf", FormatYAML},
		{"", FormatYAML},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParserFor(t *testing.T) {
	if _, ok := ParserFor("a.json").(*JSONParser); !ok {
		t.Error("ParserFor(.json) should return *JSONParser")
	}
	if _, ok := ParserFor("a.toml").(*TOMLParser); !ok {
		t.Error("ParserFor(.toml) should return *TOMLParser")
	}
	if _, ok := ParserFor("a.yaml").(*yaml.YAML); !ok {
		t.Error("ParserFor(.yaml) should return the koanf YAML parser")
	}
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("name: svc\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	data, err := ReadSource(path)
	if err != nil {
		t.Fatalf("ReadSource() error = %v", err)
	}
	if string(data) != "name: svc\n" {
		t.Errorf("ReadSource() = %q", data)
	}
}

func TestReadSource_NotFound(t *testing.T) {
	_, err := ReadSource("/nonexistent/config.yaml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadSource() error = %v, want fs.ErrNotExist", err)
	}
}

func TestParsers_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
	}{
		{"yaml", FormatYAML, "name: svc\nport: 8080\n"},
		{"json", FormatJSON, `{"name": "svc", "port": 8080}`},
		{"toml", FormatTOML, "name = \"svc\"\nport = 8080\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Parser(tt.format).Unmarshal([]byte(tt.content))
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if out["name"] != "svc" {
				t.Errorf("name = %v, want svc", out["name"])
			}
			if _, ok := out["port"]; !ok {
				t.Error("port missing from partial record")
			}
		})
	}
}

func TestParsers_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
	}{
		{"yaml", FormatYAML, "name: [unclosed\n"},
		{"json", FormatJSON, `{"name": `},
		{"json array", FormatJSON, `["a", "b"]`},
		{"toml", FormatTOML, "name = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parser(tt.format).Unmarshal([]byte(tt.content)); err == nil {
				t.Error("Unmarshal() should fail for malformed content")
			}
		})
	}
}

func TestJSONParser_KeepsLargeIntegers(t *testing.T) {
	out, err := JSON().Unmarshal([]byte(`{"id": 9007199254740993}`))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	n, ok := out["id"].(interface{ String() string })
	if !ok {
		t.Fatalf("id has type %T, want a json.Number", out["id"])
	}
	if n.String() != "9007199254740993" {
		t.Errorf("id = %s, want 9007199254740993", n.String())
	}
}

func TestParsers_Marshal(t *testing.T) {
	in := map[string]any{"name": "svc"}

	for _, f := range []Format{FormatJSON, FormatTOML} {
		b, err := Parser(f).Marshal(in)
		if err != nil {
			t.Fatalf("%s Marshal() error = %v", f, err)
		}
		back, err := Parser(f).Unmarshal(b)
		if err != nil {
			t.Fatalf("%s Unmarshal() error = %v", f, err)
		}
		if back["name"] != "svc" {
			t.Errorf("%s name = %v, want svc", f, back["name"])
		}
	}
}
