// Package cli parses the command line and drives the document
// pipeline from raw input to printed or paged output.
package cli

import (
	"github.com/spf13/cobra"

	"mat/internal/errs"
	"mat/internal/version"
)

type options struct {
	lineNumbers bool
	noHighlight bool
	markdown    bool
	noMarkdown  bool
	follow      bool

	searchPattern string
	grepPattern   string
	ignoreCase    bool
	fixedStrings  bool
	wordRegexp    bool
	lineRegexp    bool
	after         int
	before        int
	context       int
	contextSet    bool

	wrap     string
	maxWidth int
	language string
	theme    string
	lines    string
	noPager  bool
	ansi     bool
	forceBin bool
}

// NewRootCmd builds the mat command.
func NewRootCmd() *cobra.Command {
	opt := &options{}
	cmd := &cobra.Command{
		Use:           "mat [file]",
		Short:         "cat, less and grep with markdown rendering and syntax highlighting",
		Long:          "mat views a file or piped input with syntax highlighting, markdown\nrendering, grep-style filtering and an interactive pager.",
		Version:       version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt.contextSet = cmd.Flags().Changed("context")
			return run(opt, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opt.lineNumbers, "line-numbers", "n", false, "show line numbers")
	f.BoolVarP(&opt.noHighlight, "no-highlight", "N", false, "disable syntax highlighting")
	f.BoolVarP(&opt.markdown, "markdown", "m", false, "force markdown rendering")
	f.BoolVarP(&opt.noMarkdown, "no-markdown", "M", false, "disable markdown rendering")
	f.BoolVarP(&opt.follow, "follow", "f", false, "follow the file for appended lines")
	f.StringVarP(&opt.searchPattern, "search", "s", "", "highlight matches of a pattern")
	f.StringVarP(&opt.grepPattern, "grep", "g", "", "show only lines matching a pattern")
	f.BoolVarP(&opt.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	f.BoolVarP(&opt.fixedStrings, "fixed-strings", "F", false, "treat patterns as literal strings")
	f.BoolVarP(&opt.wordRegexp, "word-regexp", "w", false, "match whole words only")
	f.BoolVarP(&opt.lineRegexp, "line-regexp", "x", false, "match whole lines only")
	f.IntVarP(&opt.after, "after", "A", 0, "lines of context after each match")
	f.IntVarP(&opt.before, "before", "B", 0, "lines of context before each match")
	f.IntVarP(&opt.context, "context", "C", 0, "lines of context around each match")
	f.StringVar(&opt.wrap, "wrap", "none", "line wrapping: none, wrap or truncate")
	f.IntVarP(&opt.maxWidth, "max-width", "W", 200, "maximum line width in truncate mode")
	f.StringVarP(&opt.language, "language", "l", "", "syntax language override")
	f.StringVarP(&opt.theme, "theme", "t", "", "color theme: light or dark")
	f.StringVarP(&opt.lines, "lines", "L", "", "show a line range, e.g. 10:20")
	f.BoolVarP(&opt.noPager, "no-pager", "P", false, "print to stdout instead of paging")
	f.BoolVar(&opt.ansi, "ansi", false, "keep ANSI escape sequences in the input")
	f.BoolVar(&opt.forceBin, "force-binary", false, "view binary files anyway")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &errs.Usage{Err: err}
	})
	return cmd
}

// Execute runs the command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
