package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/routetable/routegen/internal/config"
	"github.com/routetable/routegen/internal/generator"
	"github.com/routetable/routegen/internal/logging"
	"github.com/routetable/routegen/internal/progress"
)

type generateParams struct {
	configFiles    []string
	mergeConflicts bool
	sourceDir      string
	output         string
	namespace      string
	targetKind     string
	targetName     string
	field          string
	reference      string
	strict         bool
	dryRun         bool
	diff           bool
	showProgress   bool
	logLevel       logging.Level
	logFormat      logging.Format
}

func init() {
	params := generateParams{logLevel: logging.LevelInfo}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Scan route manifests and write the route table patch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, params)
		},
	}

	flags := generate.Flags()
	flags.StringSliceVarP(&params.configFiles, "config", "c", nil, "config file or directory (can be repeated, later files override)")
	flags.BoolVar(&params.mergeConflicts, "config-strict-merge", false, "treat conflicting values across config files as errors")
	flags.StringVar(&params.sourceDir, "source-dir", "", "directory holding satellite route manifests")
	flags.StringVarP(&params.output, "output", "o", "", "path of the patch artifact to write")
	flags.StringVarP(&params.namespace, "namespace", "n", "", "namespace of the primary resource and route targets")
	flags.StringVar(&params.targetKind, "target-kind", "", "kind of the primary resource")
	flags.StringVar(&params.targetName, "target-name", "", "name of the primary resource")
	flags.StringVar(&params.field, "field", "", "JSON pointer of the route list field (default /spec/routes)")
	flags.StringVar(&params.reference, "reference", "", "target reference convention: stem or identifier")
	flags.BoolVar(&params.strict, "strict", false, "require manifest names to match filename-derived identifiers")
	flags.BoolVar(&params.dryRun, "dry-run", false, "render the patch to stdout instead of writing it")
	flags.BoolVar(&params.diff, "diff", false, "print a unified diff against the previous artifact")
	flags.BoolVar(&params.showProgress, "progress", false, "show a progress bar")
	flags.Var(enumflag.New(&params.logLevel, "level", logging.Levels, enumflag.EnumCaseInsensitive),
		"log-level", "log level (debug, info, warn, error)")
	flags.Var(enumflag.New(&params.logFormat, "format", logging.Formats, enumflag.EnumCaseInsensitive),
		"log-format", "log format (json, pretty)")

	RootCommand.AddCommand(generate)
}

func runGenerate(cmd *cobra.Command, params generateParams) error {
	conf, err := loadConfig(cmd, params)
	if err != nil {
		return err
	}

	log := logging.NewLogger(logging.Config{Level: params.logLevel, Format: params.logFormat})

	var bar *progress.Bar
	if params.showProgress && !params.dryRun {
		bar = progress.New(os.Stderr, 4, "generating route table")
		defer bar.Finish()
	}

	gen := generator.New(conf).
		WithLogger(log).
		WithProgress(bar).
		WithDiff(params.diff)
	if params.dryRun {
		gen = gen.WithDryRun(cmd.OutOrStdout())
	}

	result, err := gen.Run(cmd.Context())
	if err != nil {
		log.Errorf("generate failed: %v", err)
		return err
	}

	if params.diff && result.Diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Diff)
	}
	if !params.dryRun {
		log.Infof("%d sources, %d entries, changed=%v", result.Sources, result.Entries, result.Changed)
	}
	return nil
}

// loadConfig merges the config files (if any) and applies flag overrides on
// top. Flags win over files; booleans override only when set explicitly.
func loadConfig(cmd *cobra.Command, params generateParams) (*config.Root, error) {
	conf := &config.Root{}

	if len(params.configFiles) > 0 {
		bs, err := config.Merge(params.configFiles, params.mergeConflicts)
		if err != nil {
			return nil, err
		}
		conf, err = config.Parse(bs)
		if err != nil {
			return nil, err
		}
	}

	if params.sourceDir != "" {
		conf.Source.Dir = params.sourceDir
	}
	if params.output != "" {
		conf.Output.Path = params.output
	}
	if params.namespace != "" {
		conf.Target.Namespace = params.namespace
	}
	if params.targetKind != "" {
		conf.Target.Kind = params.targetKind
	}
	if params.targetName != "" {
		conf.Target.Name = params.targetName
	}
	if params.field != "" {
		conf.Target.Field = params.field
	}
	if params.reference != "" {
		conf.Rule.Reference = params.reference
	}
	if cmd.Flags().Changed("strict") {
		conf.Strict = params.strict
	}

	return conf, nil
}
