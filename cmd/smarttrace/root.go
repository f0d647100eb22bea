package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thanhminhmr/go-smarttrace/exception"
	"github.com/thanhminhmr/go-smarttrace/trace"
	"github.com/thanhminhmr/go-smarttrace/traceback"
)

const ErrOpenInput = exception.String("failed to open traceback")

const (
	flagRoot         = "root"
	flagGroup        = "group"
	flagIgnore       = "ignore"
	flagIgnoreCause  = "ignore-cause"
	flagMaxDepth     = "max-depth"
	flagIgnoreCauses = "ignore-causes"
	flagNoSuppressed = "no-suppressed"
	flagPackageInfo  = "package-info"
	flagModular      = "modular"
	flagColor        = "color"
	flagConfig       = "config"
	flagOption       = "option"
)

type rootFlags struct {
	root         []string
	group        []string
	ignore       []string
	ignoreCause  []string
	maxDepth     int
	ignoreCauses bool
	noSuppressed bool
	packageInfo  bool
	modular      bool
	color        bool
	config       string
	options      []string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	command := &cobra.Command{
		Use:   "smarttrace [file]",
		Short: "Condense Go panic tracebacks",
		Long: "Reads a Go panic or goroutine dump from a file, or from the standard input when no file\n" +
			"or \"-\" is given, and prints the condensed trace of the crashing goroutine.\n\n" +
			"Every flag can also be set with a SMARTTRACE_ environment variable, such as\n" +
			"SMARTTRACE_MAX_DEPTH, or with a key of the configuration file.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PreRunE: func(command *cobra.Command, _ []string) error {
			return bindEnvironment(command, flags.config)
		},
		RunE: func(command *cobra.Command, args []string) error {
			return run(command, flags, args)
		},
	}
	command.Flags().StringSliceVar(&flags.root, flagRoot, nil, "packages anchoring the displayed frames")
	command.Flags().StringSliceVar(&flags.group, flagGroup, nil, "packages whose consecutive frames are collapsed")
	command.Flags().StringSliceVar(&flags.ignore, flagIgnore, nil, "packages whose frames are dropped")
	command.Flags().StringSliceVar(&flags.ignoreCause, flagIgnoreCause, nil, "packages whose frames and causes are dropped")
	command.Flags().IntVar(&flags.maxDepth, flagMaxDepth, 0, "print only the first frames of each error, 0 to reduce to root packages")
	command.Flags().BoolVar(&flags.ignoreCauses, flagIgnoreCauses, false, "do not print causes")
	command.Flags().BoolVar(&flags.noSuppressed, flagNoSuppressed, false, "do not print other goroutines")
	command.Flags().BoolVar(&flags.packageInfo, flagPackageInfo, false, "print module and version of frames")
	command.Flags().BoolVar(&flags.modular, flagModular, false, "prefix frames with their module")
	command.Flags().BoolVar(&flags.color, flagColor, false, "highlight headers and collapsed lines")
	command.Flags().StringVar(&flags.config, flagConfig, "", "configuration file (yaml, json or toml)")
	command.Flags().StringArrayVarP(&flags.options, flagOption, "o", nil, "option string such as rootPackage=example.com/app")
	return command
}

func run(command *cobra.Command, flags *rootFlags, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: command.ErrOrStderr(), NoColor: !flags.color})

	config, err := trace.LoadConfig()
	if err != nil {
		return err
	}
	applyFlags(command, flags, config)
	trace.ParseOptions(config, &logger, flags.options...)
	registry, err := trace.New(config)
	if err != nil {
		return err
	}

	input, closer, err := openInput(command, args)
	if err != nil {
		return err
	}
	defer closer.Close()
	node, err := traceback.Parse(input)
	if err != nil {
		return err
	}
	text, err := registry.String(node)
	if err != nil {
		return err
	}
	_, err = io.WriteString(command.OutOrStdout(), newHighlighter(flags.color).highlight(text)+"\n")
	return err
}

// applyFlags overrides config with the flags set on the command line, in the
// environment or in the configuration file.
func applyFlags(command *cobra.Command, flags *rootFlags, config *trace.Config) {
	changed := command.Flags().Changed
	if changed(flagRoot) {
		config.RootPackages = append(config.RootPackages, flags.root...)
	}
	if changed(flagGroup) {
		config.GroupPackages = append(config.GroupPackages, flags.group...)
	}
	if changed(flagIgnore) {
		config.IgnorePackages = append(config.IgnorePackages, flags.ignore...)
	}
	if changed(flagIgnoreCause) {
		config.IgnoreCausePackages = append(config.IgnoreCausePackages, flags.ignoreCause...)
	}
	if changed(flagMaxDepth) {
		config.MaxDepth = flags.maxDepth
	}
	if changed(flagIgnoreCauses) {
		config.IgnoreAllCauses = flags.ignoreCauses
	}
	if changed(flagNoSuppressed) {
		config.PrintSuppressed = !flags.noSuppressed
	}
	if changed(flagPackageInfo) {
		config.PrintPackageInformation = flags.packageInfo
	}
	if changed(flagModular) && flags.modular {
		config.Formatter = trace.FormatterModular
	}
}

func openInput(command *cobra.Command, args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 || args[0] == "-" {
		return command.InOrStdin(), io.NopCloser(nil), nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return nil, nil, ErrOpenInput.AddCause(err)
	}
	return file, file, nil
}
