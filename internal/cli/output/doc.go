// Package output renders command results for the envconfig CLI.
//
// Three formats are supported: an aligned table for people, and JSON or
// YAML for scripts. Table columns come from the `json` tags of the rendered
// struct type; fields tagged `table:"-"` are JSON/YAML only, and fields
// tagged `table:"wide"` only appear in wide mode.
package output
