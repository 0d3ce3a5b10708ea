package confloader

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

// DecodeFile reads a structured document and unmarshals it into target.
// Struct fields are mapped with `koanf` tags. This is used for auxiliary
// documents such as schema files, not for the configuration being
// assembled.
func DecodeFile(path string, target any) error {
	data, err := ReadSource(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, ParserFor(path), target)
}

// Decode decodes raw content with parser and unmarshals it into target.
func Decode(data []byte, parser koanf.Parser, target any) error {
	parsed, err := parser.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(mapProvider(parsed), nil); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
