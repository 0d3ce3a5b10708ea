// Package schemafile reads schema descriptors from YAML, JSON or TOML
// documents, for checking configuration files from the command line.
package schemafile

import (
	"fmt"

	"github.com/Redblueflame/env-config/internal/infra/confloader"
	"github.com/Redblueflame/env-config/pkg/schema"
)

// Document is the on-disk form of a schema.
//
//	fields:
//	  - name: port
//	    kind: int
//	    required: false
//	    env: APP_PORT
type Document struct {
	Fields []FieldSpec `koanf:"fields"`
}

// FieldSpec is one field of a Document.
type FieldSpec struct {
	Name     string `koanf:"name"`
	Kind     string `koanf:"kind"`
	Required bool   `koanf:"required"`
	Env      string `koanf:"env"`
	Secret   bool   `koanf:"secret"`
	Bits     int    `koanf:"bits"`
}

// Load reads the schema document at path and builds its descriptor.
func Load(path string) (*schema.Descriptor, error) {
	var doc Document
	if err := confloader.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("schema file: %w", err)
	}
	desc, err := doc.Descriptor()
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return desc, nil
}

// Descriptor converts the document into a descriptor.
func (d *Document) Descriptor() (*schema.Descriptor, error) {
	fields := make([]schema.Field, 0, len(d.Fields))
	for i, fs := range d.Fields {
		kind, err := schema.ParseKind(fs.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, fs.Name, err)
		}
		switch fs.Bits {
		case 0, 8, 16, 32, 64:
		default:
			return nil, fmt.Errorf("field %d (%s): invalid bits %d", i, fs.Name, fs.Bits)
		}
		fields = append(fields, schema.Field{
			Name:     fs.Name,
			Required: fs.Required,
			Kind:     kind,
			Env:      fs.Env,
			Secret:   fs.Secret,
			Bits:     fs.Bits,
		})
	}
	return schema.New(fields...)
}
