package cli

// Config holds the options of one CLI run
type Config struct {
	// Paths are files and directories to process. Directories support the
	// Go-style "dir/..." suffix for recursion.
	Paths []string

	// At selects a single class or constructor, "file.cs:line:col" or
	// "file.cs:line:col-line:col". Paths are ignored when set.
	At string

	// Class restricts batch mode to classes with this name
	Class string

	// Write rewrites files in place instead of printing a diff
	Write bool

	// Check reports files that would change without touching them
	Check bool

	// Comments writes batch mode diagnostics into the documents
	Comments bool

	// Clean removes diagnostic comments left by earlier runs
	Clean bool

	// Verbose enables detailed logging and error reporting
	Verbose bool
}
