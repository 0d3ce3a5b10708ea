// Package schema describes the shape of a configuration type.
//
// A Descriptor lists the fields of a configuration in declaration order,
// each with its file key, value kind and whether it must be present once
// every source has been merged. Descriptors hold no runtime values and are
// immutable after construction, so one descriptor may be shared by any
// number of concurrent assembly runs.
//
// Descriptors come from two places:
//
//   - Describe / DescribeType: reflection over a struct type. A pointer
//     field (*T) is optional, every other supported field is required.
//     Results are cached process-wide per type.
//   - New: manual registration, used when the shape is only known at
//     runtime (for example a schema document read by the CLI).
//
// Struct tags understood by Describe:
//
//	Name    string        `koanf:"name"`            // file key (default: snake_case of the Go name)
//	Port    *int          `env:"APP_PORT"`          // explicit environment key
//	Token   string        `secret:"true"`           // value is masked in logs and reports
//	Ignored string        `koanf:"-"`               // not part of the schema
package schema
