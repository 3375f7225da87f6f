package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/buildergen/internal/cli"
	"github.com/toyz/buildergen/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("buildergen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configFlag    = fs.String("config", "", "Path to a YAML config file (defaults to ./"+cli.DefaultConfigFile+" when present)")
		moduleFlag    = fs.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		suffixFlag    = fs.String("suffix", "", "File name suffix of generated builders (defaults to _builder.go)")
		verboseFlag   = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag     = fs.Bool("quiet", false, "Only show errors and warnings")
		cleanFlag     = fs.Bool("clean", false, "Delete all generated builder files from the specified directories")
		dryRunFlag    = fs.Bool("dry-run", false, "Print generated builders instead of writing them")
		warnEmptyFlag = fs.Bool("warn-empty", false, "Warn about types whose annotated methods were all rejected")
		helpFlag      = fs.Bool("help", false, "Show help information")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: buildergen [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Builder Code Generator\n")
		fmt.Fprintf(stderr, "Scans Go files for //builder::property setters and generates a fluent builder per type.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  buildergen ./...                              # Scan everything recursively\n")
		fmt.Fprintf(stderr, "  buildergen ./internal/models                  # Scan only one directory\n")
		fmt.Fprintf(stderr, "  buildergen --dry-run ./...                    # Print builders without writing\n")
		fmt.Fprintf(stderr, "  buildergen --clean ./...                      # Delete generated builders\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		fs.Usage()
		return 0
	}

	configPath, required := cli.DefaultConfigFile, false
	if *configFlag != "" {
		configPath, required = *configFlag, true
	}
	config, err := cli.LoadConfig(configPath, required)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Flags given on the command line override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "module":
			config.ModuleName = *moduleFlag
		case "suffix":
			config.FileSuffix = *suffixFlag
		case "verbose":
			config.Verbose = *verboseFlag
		case "quiet":
			config.Quiet = *quietFlag
		case "warn-empty":
			config.WarnEmpty = *warnEmptyFlag
		}
	})
	config.DryRun = *dryRunFlag
	if fs.NArg() > 0 {
		config.Directories = fs.Args()
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fs.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case config.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	if *cleanFlag {
		diagnostics.Header("cleaning generated builders")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(config.Directories)
		for _, file := range removed {
			diagnostics.List("removed %s", file)
		}
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		diagnostics.Complete(fmt.Sprintf("removed %d file(s)", len(removed)))
		return 0
	}

	diagnostics.Header("generating builders")
	if config.Verbose {
		diagnostics.PhaseHeader("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(config.Directories, ", "))
		if config.ModuleName != "" {
			diagnostics.List("Custom module: %s", config.ModuleName)
		}
		if config.FileSuffix != "" {
			diagnostics.List("File suffix: %s", config.FileSuffix)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	generator.SetOutput(stdout)

	if err := generator.Run(*config); err != nil {
		generator.Reporter().ReportError(err)
		return 1
	}

	if !config.DryRun {
		diagnostics.Summary("Generation complete", generator.GetSummary().Stats())
	}
	return 0
}
