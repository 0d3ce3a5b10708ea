package command

import (
	"github.com/urfave/cli/v2"

	"github.com/Redblueflame/env-config/internal/cli/schemafile"
	"github.com/Redblueflame/env-config/pkg/envconfig"
	"github.com/Redblueflame/env-config/pkg/schema"
)

// fieldView is one row of the describe output.
type fieldView struct {
	Name     string      `json:"name" yaml:"name"`
	Kind     schema.Kind `json:"kind" yaml:"kind"`
	Required bool        `json:"required" yaml:"required"`
	Env      string      `json:"env" yaml:"env"`
	Secret   bool        `json:"secret" yaml:"secret" table:"wide"`
	Bits     int         `json:"bits,omitempty" yaml:"bits,omitempty" table:"wide"`
}

// DescribeCommand returns the describe command.
func DescribeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "List the fields of a schema file",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			schemaFlag(),
			envPrefixFlag(),
		},
		Action: describeSchema,
	}
}

func schemaFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "schema",
		Aliases:  []string{"s"},
		Usage:    "Schema file (yaml, json or toml)",
		Required: true,
	}
}

func envPrefixFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "env-prefix",
		Aliases: []string{"p"},
		Usage:   "Prefix of derived environment variable names",
	}
}

func describeSchema(c *cli.Context) error {
	desc, err := schemafile.Load(c.String("schema"))
	if err != nil {
		return cli.Exit(err.Error(), exitUnusable)
	}

	prefix := envPrefix(c)
	views := make([]fieldView, 0, desc.Len())
	for _, f := range desc.Fields() {
		bits := f.Bits
		if f.Kind == schema.String || f.Kind == schema.Bool || f.Kind == schema.Duration {
			bits = 0
		}
		views = append(views, fieldView{
			Name:     f.Name,
			Kind:     f.Kind,
			Required: f.Required,
			Env:      envconfig.EnvKey(f, prefix),
			Secret:   f.Secret,
			Bits:     bits,
		})
	}
	return render(c, views)
}

// envPrefix returns the --env-prefix flag, or the settings default.
func envPrefix(c *cli.Context) string {
	if c.IsSet("env-prefix") {
		return c.String("env-prefix")
	}
	return GetSettings(c).Prefix()
}
