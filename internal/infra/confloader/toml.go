package confloader

import "github.com/pelletier/go-toml/v2"

// TOMLParser decodes TOML documents.
type TOMLParser struct{}

// TOML returns a TOML parser.
func TOML() *TOMLParser {
	return &TOMLParser{}
}

// Unmarshal decodes a TOML document.
func (p *TOMLParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a map as TOML.
func (p *TOMLParser) Marshal(o map[string]any) ([]byte, error) {
	return toml.Marshal(o)
}
