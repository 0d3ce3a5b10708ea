package confloader

import (
	"bytes"

	"github.com/goccy/go-json"
)

// JSONParser decodes JSON documents. Numbers are kept as json.Number so
// that large integers are not rounded through float64.
type JSONParser struct{}

// JSON returns a JSON parser.
func JSON() *JSONParser {
	return &JSONParser{}
}

// Unmarshal decodes a JSON object.
func (p *JSONParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a map as JSON.
func (p *JSONParser) Marshal(o map[string]any) ([]byte, error) {
	return json.Marshal(o)
}
