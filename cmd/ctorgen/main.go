package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toyz/ctorgen/internal/cli"
	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/di"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/utils"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ctorgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		atFlag          = fs.String("at", "", "Regenerate only the class or constructor at file.cs:line:col[-line:col]")
		classFlag       = fs.String("class", "", "Only regenerate classes with this name")
		writeFlag       = fs.Bool("write", false, "Write results to the source files instead of printing a diff")
		checkFlag       = fs.Bool("check", false, "Exit with status 1 if any file would change")
		commentsFlag    = fs.Bool("comments", false, "Write diagnostics into the source files as comments")
		cleanFlag       = fs.Bool("clean", false, "Remove diagnostic comments left by earlier runs")
		configFlag      = fs.String("config", "", "Configuration file (defaults to the nearest "+config.DefaultFileName+")")
		printConfigFlag = fs.Bool("print-config", false, "Print the effective configuration and exit")
		serveFlag       = fs.Bool("serve", false, "Serve the refactoring over HTTP")
		verboseFlag     = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag       = fs.Bool("quiet", false, "Only show errors and final results")
		versionFlag     = fs.Bool("version", false, "Print the version and exit")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ctorgen [options] <paths...>\n\n")
		fmt.Fprintf(stderr, "Dependency injected constructor generator for C#\n")
		fmt.Fprintf(stderr, "Regenerates constructors so they take and assign every readonly field and\n")
		fmt.Fprintf(stderr, "every property marked with [InjectedDependency].\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  paths              Files or directories to process\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ctorgen ./...                          # Print a diff for every class\n")
		fmt.Fprintf(stderr, "  ctorgen -write ./src/...               # Rewrite files in place\n")
		fmt.Fprintf(stderr, "  ctorgen -check ./...                   # Fail when a constructor is stale\n")
		fmt.Fprintf(stderr, "  ctorgen -write -at Service.cs:12:5     # Regenerate one class or constructor\n")
		fmt.Fprintf(stderr, "  ctorgen -serve                         # Start the HTTP host\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "ctorgen %s\n", version)
		return 0
	}

	paths := fs.Args()
	reporter := cli.NewDiagnosticReporterWithWriter(*verboseFlag, stderr)

	// Progress goes to stderr while stdout carries diffs
	progress := stderr
	if *writeFlag || *checkFlag {
		progress = stdout
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewDiagnosticSystemWithWriters(utils.DiagnosticError, progress, stderr)
	case *verboseFlag:
		diagnostics = utils.NewDiagnosticSystemWithWriters(utils.DiagnosticVerbose, progress, stderr)
	default:
		diagnostics = utils.NewDiagnosticSystemWithWriters(utils.DiagnosticInfo, progress, stderr)
	}

	cfg, err := loadConfig(*configFlag, *atFlag, paths)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}
	if err := cfg.CheckVersion(version); err != nil {
		reporter.ReportError(err)
		return 1
	}

	if *printConfigFlag {
		if err := cfg.Dump(stdout); err != nil {
			reporter.ReportError(err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serveFlag {
		return serve(ctx, cfg, reporter, diagnostics)
	}

	if *atFlag == "" && len(paths) == 0 {
		fmt.Fprintf(stderr, "Error: At least one path is required\n\n")
		fs.Usage()
		return 1
	}
	if *writeFlag && *checkFlag {
		fmt.Fprintf(stderr, "Error: -write and -check cannot be combined\n")
		return 1
	}

	diagnostics.Header("regenerating dependency injected constructors")
	if *verboseFlag {
		diagnostics.PhaseHeader("Configuration")
		diagnostics.Indent()
		diagnostics.List("Paths: %s", strings.Join(paths, ", "))
		diagnostics.List("Extensions: %s", strings.Join(cfg.Scan.Extensions, ", "))
		diagnostics.List("Indent: %q", cfg.Layout.Indent)
		diagnostics.Unindent()
	}

	generator, err := cli.NewGenerator(cfg, diagnostics, reporter)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}
	generator.SetOutput(stdout)

	err = generator.Run(ctx, cli.Config{
		Paths:    paths,
		At:       *atFlag,
		Class:    *classFlag,
		Write:    *writeFlag,
		Check:    *checkFlag,
		Comments: *commentsFlag,
		Clean:    *cleanFlag,
		Verbose:  *verboseFlag,
	})
	if err != nil {
		reporter.ReportError(err)
		// a batch that skipped unparsable files still reports what it did
		var skipped *errors.MultipleErrors
		if !errors.As(err, &skipped) {
			return 1
		}
	}

	summary := generator.GetSummary()
	diagnostics.Summary("Summary", summary.Stats())
	if err != nil {
		return 1
	}

	switch {
	case *checkFlag && len(summary.ChangedFiles) > 0:
		diagnostics.Error("%d file(s) need their constructors regenerated", len(summary.ChangedFiles))
		return 1
	case *writeFlag && len(summary.ChangedFiles) > 0:
		diagnostics.Success("%d file(s) updated", len(summary.ChangedFiles))
	}
	return 0
}

// loadConfig reads the -config file, or the configuration nearest to the
// processed files when none is given
func loadConfig(path, at string, paths []string) (*config.Config, error) {
	if path == "" {
		start := "."
		switch {
		case at != "":
			if sel, err := cli.ParseSelection(at); err == nil {
				start = sel.Path
			}
		case len(paths) > 0:
			start = paths[0]
		}
		if found, ok := cli.NewConfigLocator().Locate(start); ok {
			path = found
		}
	}
	return config.Load(path)
}

func serve(ctx context.Context, cfg *config.Config, reporter *cli.DiagnosticReporter, diagnostics *utils.DiagnosticSystem) int {
	srv, cleanup, err := di.InitializeServer(cfg)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}
	defer cleanup()

	diagnostics.Info("Serving on %s", cfg.Server.Addr)
	if err := srv.Start(ctx); err != nil {
		reporter.ReportError(err)
		return 1
	}
	return 0
}
