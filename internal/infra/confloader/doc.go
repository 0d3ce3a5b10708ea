// Package confloader provides the source-level collaborators of the
// configuration assembly engine.
//
// It knows how to:
//
//   - Read a configuration source from disk (koanf file provider)
//   - Pick a decoder for a file by extension: YAML (koanf), JSON
//     (goccy/go-json) or TOML (go-toml/v2)
//   - Take a snapshot of the process environment (koanf env provider)
//   - Decode auxiliary documents into tagged structs through koanf
//
// Decoders follow the koanf.Parser contract and yield a partial record:
// a map from top-level keys to decoded values, any subset of which may be
// present. This package never validates or merges anything; that is the
// job of pkg/envconfig.
package confloader
