package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"git.weirdcat.su/weirdcat/vogen/internal/config"
	"git.weirdcat.su/weirdcat/vogen/internal/logger"
	"git.weirdcat.su/weirdcat/vogen/internal/vogen"
)

func main() {
	cmd := newRootCommand(afero.NewOsFs())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:   "vogen",
		Short: "Generate value objects for Go structs",
		Long: `vogen derives a <Name>VO type in <package>/vo for every struct of the
configured packages. Only fields with a matching getter and setter are kept.
A converter file with stub To<Name>VO/From<Name>VO functions is written for
each package.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, fs)
		},
	}

	flags := root.Flags()
	flags.StringP("config", "c", "", "config file (default: vogen.yaml, vogen.yml or vogen.json if present)")
	flags.String("source-root", "", "root directory of the source packages")
	flags.String("output-root", "", "root directory of the generated tree, cleared on every run")
	flags.StringSliceP("package", "p", nil, "dotted package to process (repeatable)")
	flags.String("default-package", "", "dotted package receiving the converter files")
	flags.String("strategy", "", "renderer: template or jennifer")
	flags.String("template-dir", "", "directory with *.tmpl files overriding the built-in templates")
	flags.String("test-option", "", "pass-through option, logged at info level")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("no-color", false, "disable colored log output")

	return root
}

func run(cmd *cobra.Command, fs afero.Fs) error {
	cfg, err := loadConfig(cmd, fs)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	log, err := newLogger(cmd, cfg, cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	if err := vogen.Generate(cfg, vogen.WithFs(fs), vogen.WithLogger(log)); err != nil {
		log.Error("%v", err)
		return err
	}
	return nil
}

// loadConfig reads the config file, if any, and applies the changed flags on top
func loadConfig(cmd *cobra.Command, fs afero.Fs) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = config.Find(fs, ".")
	}

	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(fs, path); err != nil {
			return nil, err
		}
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Merge(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

func flagOverrides(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	overrides := &config.Config{}

	stringFlags := map[string]*string{
		"source-root":     &overrides.SourceRoot,
		"output-root":     &overrides.OutputRoot,
		"default-package": &overrides.DefaultPackage,
		"template-dir":    &overrides.TemplateDir,
		"test-option":     &overrides.TestOption,
		"log-level":       &overrides.LogLevel,
	}
	for name, target := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		*target = value
	}

	if flags.Changed("strategy") {
		strategy, err := flags.GetString("strategy")
		if err != nil {
			return nil, err
		}
		overrides.Strategy = config.Strategy(strategy)
	}

	if flags.Changed("package") {
		packages, err := flags.GetStringSlice("package")
		if err != nil {
			return nil, err
		}
		overrides.Packages = packages
	}

	return overrides, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config, w io.Writer) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}
	return logger.New(logger.Options{Level: level, Writer: w, Colors: !noColor}), nil
}
