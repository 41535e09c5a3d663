package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/routetable/routegen/internal/generator"
	"github.com/routetable/routegen/internal/logging"
)

func init() {
	params := generateParams{logLevel: logging.LevelWarn}

	routes := &cobra.Command{
		Use:   "routes",
		Short: "List the route entries the current directory state would generate",
		Long: `Routes scans the source directory, derives the route entries and prints
the assembled, ordered route table without writing the patch artifact.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoutes(cmd, params)
		},
	}

	flags := routes.Flags()
	flags.StringSliceVarP(&params.configFiles, "config", "c", nil, "config file or directory (can be repeated, later files override)")
	flags.StringVar(&params.sourceDir, "source-dir", "", "directory holding satellite route manifests")
	flags.StringVarP(&params.namespace, "namespace", "n", "", "namespace of the primary resource and route targets")
	flags.StringVar(&params.targetKind, "target-kind", "", "kind of the primary resource")
	flags.StringVar(&params.targetName, "target-name", "", "name of the primary resource")
	flags.StringVar(&params.reference, "reference", "", "target reference convention: stem or identifier")
	flags.BoolVar(&params.strict, "strict", false, "require manifest names to match filename-derived identifiers")
	flags.Var(enumflag.New(&params.logLevel, "level", logging.Levels, enumflag.EnumCaseInsensitive),
		"log-level", "log level (debug, info, warn, error)")
	flags.Var(enumflag.New(&params.logFormat, "format", logging.Formats, enumflag.EnumCaseInsensitive),
		"log-format", "log format (json, pretty)")

	RootCommand.AddCommand(routes)
}

func runRoutes(cmd *cobra.Command, params generateParams) error {
	conf, err := loadConfig(cmd, params)
	if err != nil {
		return err
	}

	log := logging.NewLogger(logging.Config{Level: params.logLevel, Format: params.logFormat})

	entries, err := generator.New(conf).WithLogger(log).Routes(cmd.Context())
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Path", "Target", "Source")
	for _, e := range entries {
		if err := table.Append(e.Path, e.Target, e.Source); err != nil {
			return err
		}
	}
	return table.Render()
}
