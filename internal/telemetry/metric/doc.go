// Package metric provides Prometheus instrumentation for configuration
// assembly.
//
// Metrics:
//
//   - envconfig_loads_total{outcome}: assembly runs by outcome
//     (ok, read_error, parse_error, invalid, schema_error)
//   - envconfig_field_problems_total{field,category}: per-field problems
//     reported by failed runs (missing, type, constraint)
//   - envconfig_load_duration_seconds: assembly latency
//
// Collectors are registered on the caller's registerer. Registering the
// same metrics twice reuses the collectors that are already there.
package metric
