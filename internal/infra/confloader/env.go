package confloader

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
)

// Snapshot returns the environment variables starting with prefix
// (all variables when prefix is empty), keyed by their full name.
//
// The environment is read once; later changes to the process environment
// do not affect the returned map.
func Snapshot(prefix string) (map[string]string, error) {
	// Identity transform: keys are matched verbatim by the caller.
	provider := env.Provider(prefix, ".", func(s string) string {
		return s
	})

	raw, err := provider.Read()
	if err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		// Names containing the delimiter are unflattened into nested
		// maps by the provider; they cannot match a field key.
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}
