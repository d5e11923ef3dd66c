package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly terminal output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem creates a diagnostic system writing to stdout and stderr
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return NewDiagnosticSystemWithWriters(level, os.Stdout, os.Stderr)
}

// NewDiagnosticSystemWithWriters creates a diagnostic system writing to the given streams
func NewDiagnosticSystemWithWriters(level DiagnosticLevel, output, errorOut io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    output,
		errorOut:  errorOut,
	}
}

// SetColors overrides terminal color detection
func (d *DiagnosticSystem) SetColors(enabled bool) {
	d.useColors = enabled
}

// SetShowTime toggles timestamps on level-tagged messages
func (d *DiagnosticSystem) SetShowTime(enabled bool) {
	d.showTime = enabled
}

type messageStyle struct {
	tag  string
	attr color.Attribute
	min  DiagnosticLevel
	err  bool // written to the error stream
}

var (
	errorStyle   = messageStyle{"ERROR", color.FgRed, DiagnosticError, true}
	warnStyle    = messageStyle{"WARN", color.FgYellow, DiagnosticWarn, true}
	infoStyle    = messageStyle{"INFO", color.FgBlue, DiagnosticInfo, false}
	successStyle = messageStyle{"SUCCESS", color.FgGreen, DiagnosticInfo, false}
	verboseStyle = messageStyle{"VERBOSE", color.FgHiBlack, DiagnosticVerbose, false}
	debugStyle   = messageStyle{"DEBUG", color.FgMagenta, DiagnosticDebug, false}
)

// Error is shown at every level but silent
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	d.message(errorStyle, format, args...)
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.message(warnStyle, format, args...)
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.message(infoStyle, format, args...)
}

func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.message(successStyle, format, args...)
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.message(verboseStyle, format, args...)
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.message(debugStyle, format, args...)
}

// Header outputs the tool banner
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintln(d.output, d.paint(color.FgCyan, "ctorgen: "+message))
	}
}

// PhaseHeader outputs a phase header
func (d *DiagnosticSystem) PhaseHeader(phase string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintln(d.output, d.paint(color.FgBlue, phase+":"))
	}
}

// PhaseItem prints a finished step under the current phase
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	d.item(d.paint(color.FgGreen, "✓"), format, args...)
}

// PhaseProgress prints a file being rewritten
func (d *DiagnosticSystem) PhaseProgress(format string, args ...interface{}) {
	d.item(d.paint(color.FgMagenta, "✏"), format, args...)
}

func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	d.item("-", format, args...)
}

func (d *DiagnosticSystem) item(bullet, format string, args ...interface{}) {
	if d.level < DiagnosticInfo {
		return
	}
	fmt.Fprintf(d.output, "%s%s %s\n", d.getIndent(), bullet, fmt.Sprintf(format, args...))
}

// Indent nests the following items and messages one level deeper
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics, keys in sorted order
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(d.output, "\n%s\n", title)
	for _, key := range keys {
		fmt.Fprintf(d.output, "   %s: %v\n", key, stats[key])
	}
}

func (d *DiagnosticSystem) message(style messageStyle, format string, args ...interface{}) {
	if d.level < style.min {
		return
	}
	w := d.output
	if style.err {
		w = d.errorOut
	}

	var b strings.Builder
	b.WriteString(d.getIndent())
	if d.showTime {
		b.WriteString(time.Now().Format("15:04:05 "))
	}
	b.WriteString(d.paint(style.attr, "["+style.tag+"]"))
	b.WriteByte(' ')
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	io.WriteString(w, b.String())
}

func (d *DiagnosticSystem) paint(attr color.Attribute, text string) string {
	if !d.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors honours NO_COLOR and FORCE_COLOR before looking at TERM
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
