package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Redblueflame/env-config/internal/cli/schemafile"
	"github.com/Redblueflame/env-config/internal/telemetry/logger"
	"github.com/Redblueflame/env-config/pkg/envconfig"
	"github.com/Redblueflame/env-config/pkg/schema"
)

// entryView is one row of a successful check.
type entryView struct {
	Field  string           `json:"field" yaml:"field"`
	Kind   schema.Kind      `json:"kind" yaml:"kind"`
	Source envconfig.Source `json:"source" yaml:"source"`
	Value  any              `json:"value" yaml:"value"`
	Env    string           `json:"env" yaml:"env" table:"wide"`
}

// CheckCommand returns the check command.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Assemble a configuration file and the environment against a schema",
		ArgsUsage: "[CONFIG_FILE]",
		Description: "Reads CONFIG_FILE (optional), overlays environment variables and\n" +
			"reports every missing or malformed field in one run.",
		Flags: []cli.Flag{
			schemaFlag(),
			envPrefixFlag(),
		},
		Action: checkConfig,
	}
}

func checkConfig(c *cli.Context) error {
	if c.NArg() > 1 {
		return cli.Exit("check takes at most one configuration file", exitUnusable)
	}

	desc, err := schemafile.Load(c.String("schema"))
	if err != nil {
		return cli.Exit(err.Error(), exitUnusable)
	}

	prefix := envPrefix(c)
	rec, err := envconfig.Assemble(desc, c.Args().First(),
		envconfig.WithEnvPrefix(prefix),
		envconfig.WithLogger(GetLogger(c)),
	)
	if err != nil {
		var invalid *envconfig.AssemblyError
		if !errors.As(err, &invalid) {
			return cli.Exit(err.Error(), exitUnusable)
		}
		problems := invalid.Problems()
		if rerr := render(c, problems); rerr != nil {
			return rerr
		}
		return cli.Exit(fmt.Sprintf("invalid configuration: %d %s", len(problems), plural(len(problems), "problem")), exitInvalid)
	}

	views := make([]entryView, 0, rec.Len())
	for _, e := range rec.Entries() {
		views = append(views, entryView{
			Field:  e.Field.Name,
			Kind:   e.Field.Kind,
			Source: e.Source,
			Value:  displayValue(e),
			Env:    envconfig.EnvKey(e.Field, prefix),
		})
	}
	return render(c, views)
}

// displayValue is the printable form of an entry: secrets masked,
// durations as strings, nil when absent.
func displayValue(e envconfig.Entry) any {
	if !e.Present {
		return nil
	}
	if e.Field.Secret {
		return logger.Mask(fmt.Sprint(e.Value))
	}
	if d, ok := e.Value.(time.Duration); ok {
		return d.String()
	}
	return e.Value
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
