// Package envconfig assembles a typed configuration value from a
// configuration file and the process environment.
//
// Assembly is "gather, then validate":
//
//  1. The file is read and decoded into a partial record. Read and decode
//     failures abort the run (ReadError, ParsingError).
//  2. A draft with one slot per schema field is seeded from the partial
//     record.
//  3. The environment is snapshotted once and every field whose variable is
//     set is overwritten (environment wins over file). Values that cannot be
//     converted are recorded as TypeError and the run continues.
//  4. Every required field is checked. All missing fields are reported, in
//     schema order, not just the first one.
//  5. The draft is finalized into an immutable Record (and, for Load, into
//     the caller's struct). Construction is all-or-nothing.
//
// Type errors, missing fields and struct constraint violations of one run
// are returned together as a single *AssemblyError.
//
// Typical use:
//
//	type Config struct {
//	    Name    string `koanf:"name"`
//	    Address string `koanf:"address"`
//	    Port    *int   `koanf:"port"`
//	}
//
//	cfg, err := envconfig.Load[Config]("config.toml", envconfig.WithEnvPrefix("APP_"))
//	if err != nil {
//	    var invalid *envconfig.AssemblyError
//	    if errors.As(err, &invalid) {
//	        for _, p := range invalid.Problems() {
//	            fmt.Println(p.Field, p.Category, p.Detail)
//	        }
//	    }
//	    return err
//	}
package envconfig
