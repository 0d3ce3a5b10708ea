package confloader

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Format is a configuration file format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ReadSource reads the raw content of a configuration file.
func ReadSource(path string) ([]byte, error) {
	return file.Provider(path).ReadBytes()
}

// FormatOf returns the format implied by the file extension.
// Unknown or missing extensions are treated as YAML, which also accepts
// JSON documents.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Parser returns the decoder for a format.
func Parser(f Format) koanf.Parser {
	switch f {
	case FormatJSON:
		return JSON()
	case FormatTOML:
		return TOML()
	default:
		return yaml.Parser()
	}
}

// ParserFor returns the decoder matching the extension of path.
func ParserFor(path string) koanf.Parser {
	return Parser(FormatOf(path))
}
