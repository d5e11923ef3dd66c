package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/generator"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/parser"
	"github.com/toyz/ctorgen/internal/refactoring"
	"github.com/toyz/ctorgen/internal/utils"
)

// GenerationSummary contains information about a run
type GenerationSummary struct {
	FilesScanned        int
	FilesSkipped        int // files without injectable members
	ClassesRegenerated  int
	ClassesUnchanged    int
	DiagnosticsReported int
	CommentsRemoved     int
	UnnamedParameters   int // parameters generated for a member named "_"
	ChangedFiles        []string
}

// Stats returns the summary in the shape expected by DiagnosticSystem.Summary
func (s GenerationSummary) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"Files scanned":        s.FilesScanned,
		"Files skipped":        s.FilesSkipped,
		"Files changed":        len(s.ChangedFiles),
		"Classes regenerated":  s.ClassesRegenerated,
		"Classes up to date":   s.ClassesUnchanged,
		"Diagnostics reported": s.DiagnosticsReported,
		"Comments removed":     s.CommentsRemoved,
	}
	if s.UnnamedParameters > 0 {
		stats["Unnamed parameters"] = s.UnnamedParameters
	}
	return stats
}

// Generator coordinates the CLI process: scanning, regenerating and writing
type Generator struct {
	scanner     *DirectoryScanner
	reader      *utils.FileReader
	refactorer  *refactoring.Refactorer
	cleaner     *Cleaner
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	output      io.Writer
	summary     GenerationSummary
}

// NewGenerator creates a CLI generator from the effective configuration
func NewGenerator(cfg *config.Config, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) (*Generator, error) {
	resolver, err := cfg.Resolver()
	if err != nil {
		return nil, err
	}
	return &Generator{
		scanner: NewDirectoryScanner(cfg.Scan),
		reader:  utils.NewFileReader(parser.NewParser(resolver)),
		refactorer: refactoring.New(refactoring.Options{
			Layout:   cfg.LayoutOptions(),
			Resolver: resolver,
		}),
		cleaner:     NewCleaner(),
		reporter:    reporter,
		diagnostics: diagnostics,
		output:      os.Stdout,
	}, nil
}

// SetOutput sets where diffs are written, stdout by default
func (g *Generator) SetOutput(w io.Writer) {
	g.output = w
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete process for one configuration
func (g *Generator) Run(ctx context.Context, c Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{ChangedFiles: make([]string, 0)}
	g.diagnostics.Verbose("Starting at %s", startTime.Format("15:04:05"))

	var err error
	switch {
	case c.At != "":
		err = g.runSelection(ctx, c)
	case c.Clean:
		err = g.runClean(c)
	default:
		err = g.runBatch(ctx, c)
	}
	if err != nil {
		return err
	}

	parsed, content := g.reader.CacheStats()
	g.diagnostics.Debug("Cache: %d parsed (%d hits), %d read (%d hits)", parsed.Size, parsed.Hits, content.Size, content.Hits)
	g.diagnostics.Verbose("Finished in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// runSelection regenerates the class or constructor under one selection,
// writing a comment when that is not possible
func (g *Generator) runSelection(ctx context.Context, c Config) error {
	sel, err := ParseSelection(c.At)
	if err != nil {
		return err
	}

	doc, err := g.reader.ReadDocument(sel.Path)
	if err != nil {
		return err
	}
	g.summary.FilesScanned = 1

	span, err := sel.Span(doc.Text)
	if err != nil {
		return err
	}

	action, err := g.refactorer.ProposeRefactoring(ctx, doc, span)
	if err != nil {
		return err
	}
	if action == nil {
		return errors.Newf(errors.ValidationErrorCode, "no class or constructor at %s", c.At).
			WithContext("file", sel.Path).
			WithHint("Place the selection on a class or constructor declaration, attributes included")
	}

	g.diagnostics.Verbose("Selected %s", describeTarget(action.Target()))
	out, result, err := action.Run(ctx)
	if err != nil {
		return err
	}

	if result.Diagnostic != nil {
		g.summary.DiagnosticsReported++
		if msg, err := g.refactorer.Message(result.Diagnostic); err == nil {
			g.diagnostics.Warn("%s: %s", action.Target().Class.Name, msg)
		}
	} else if result.Changed() {
		g.summary.ClassesRegenerated++
		g.reportUnnamed(sel.Path, action.Target().Class.Name, result.Synthesis.UnnamedMembers())
	} else {
		g.summary.ClassesUnchanged++
	}

	return g.emit(c, doc, out)
}

// runBatch regenerates every class with injectable members in the scanned files
func (g *Generator) runBatch(ctx context.Context, c Config) error {
	files, err := g.scanPaths(c.Paths)
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Regenerating")
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	// unparsable files are skipped and reported once the batch is done
	skipped := errors.NewMultipleErrors()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		file, err := g.reader.ParseFile(path)
		if err != nil {
			var ctorErr errors.CtorError
			if !errors.As(err, &ctorErr) || ctorErr.ErrorCode() != errors.SyntaxErrorCode {
				return err
			}
			g.summary.FilesSkipped++
			g.diagnostics.Warn("%s: skipped, could not parse", path)
			skipped.Add(ctorErr)
			continue
		}
		if !hasCandidates(file) {
			g.summary.FilesSkipped++
			g.diagnostics.Debug("%s: no injectable members", path)
			continue
		}

		result, err := g.refactorer.RegenerateAll(ctx, file.Document, refactoring.BatchOptions{
			Class:    c.Class,
			Comments: c.Comments,
		})
		if err != nil {
			return err
		}

		for _, outcome := range result.Outcomes {
			switch {
			case outcome.Diagnostic != nil:
				g.summary.DiagnosticsReported++
				g.reporter.ReportDiagnostic(path, outcome)
			case outcome.Changed:
				g.summary.ClassesRegenerated++
				g.diagnostics.Verbose("%s: regenerated %s", path, outcome.Class)
				g.reportUnnamed(path, outcome.Class, outcome.Unnamed)
			default:
				g.summary.ClassesUnchanged++
			}
		}

		if err := g.emit(c, file.Document, result.Document); err != nil {
			return err
		}
	}
	return skipped.ErrOrNil()
}

// reportUnnamed warns about parameters left without a name, the output does not compile
func (g *Generator) reportUnnamed(path, class string, members []string) {
	for _, m := range members {
		g.summary.UnnamedParameters++
		g.reporter.ReportWarning(fmt.Sprintf("%s: %s: member %q gives an empty parameter name, rename it before compiling", path, class, m))
	}
}

// runClean removes diagnostic comments from the scanned files
func (g *Generator) runClean(c Config) error {
	files, err := g.scanPaths(c.Paths)
	if err != nil {
		return err
	}

	for _, path := range files {
		doc, err := g.reader.ReadDocument(path)
		if err != nil {
			return err
		}

		text, removed := g.cleaner.StripDiagnostics(doc.Text)
		g.summary.CommentsRemoved += removed
		if err := g.emit(c, doc, models.NewDocument(doc.Name, text)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) scanPaths(paths []string) ([]string, error) {
	files, err := g.scanner.ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	g.summary.FilesScanned = len(files)
	g.diagnostics.Info("Found %d source files to process", len(files))
	return files, nil
}

// emit writes, diffs or records a changed document depending on the mode
func (g *Generator) emit(c Config, before, after models.Document) error {
	if before.Text == after.Text {
		return nil
	}
	g.summary.ChangedFiles = append(g.summary.ChangedFiles, before.Name)

	switch {
	case c.Check:
		g.diagnostics.List("%s", before.Name)
		return nil

	case c.Write:
		if err := g.scanner.FileProcessor().WriteFile(before.Name, after.Text); err != nil {
			return errors.WrapFileSystemError("write", before.Name, err)
		}
		g.reader.InvalidateFile(before.Name)
		g.diagnostics.PhaseProgress("%s", before.Name)
		return nil

	default:
		diff, err := utils.UnifiedDiff(before.Name, before.Text, after.Text)
		if err != nil {
			return errors.Wrap(errors.UnknownErrorCode, "failed to diff "+before.Name, err)
		}
		_, err = io.WriteString(g.output, diff)
		return err
	}
}

func hasCandidates(file *models.File) bool {
	for _, class := range file.AllClasses() {
		if len(generator.Classify(class.Members)) > 0 {
			return true
		}
	}
	return false
}

func describeTarget(t parser.Target) string {
	if t.IsConstructor() {
		return "constructor of " + t.Class.Name
	}
	return "class " + t.Class.Name
}
