package cli

import (
	"fmt"
	"os"
	"regexp"

	"mat/internal/doc"
	"mat/internal/grep"
	"mat/internal/highlight"
	"mat/internal/ingest"
	"mat/internal/markdown"
	"mat/internal/pattern"
	"mat/internal/theme"
	"mat/internal/ui"
)

func stdinPiped() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}

// run drives the pipeline: load, render, filter, highlight, then print
// or page.
func run(opt *options, args []string) error {
	filePath := ""
	useStdin := false
	switch {
	case len(args) == 1 && args[0] == "-":
		useStdin = true
	case len(args) == 1:
		filePath = args[0]
	case stdinPiped():
		useStdin = true
	default:
		fmt.Fprintln(os.Stderr, "mat: No input file specified. Use 'mat <file>' or pipe data to stdin.")
		return nil
	}

	ingestOpt := ingest.Options{ForceBinary: opt.forceBin, KeepANSI: opt.ansi}
	var content *ingest.Content
	var err error
	if useStdin {
		content, err = ingest.LoadStdin(os.Stdin, ingestOpt)
	} else {
		content, err = ingest.LoadFile(filePath, ingestOpt)
	}
	if err != nil {
		return err
	}

	renderMarkdown := content.IsMarkdown
	if opt.markdown {
		renderMarkdown = true
	}
	if opt.noMarkdown {
		renderMarkdown = false
	}

	var document *doc.Document
	if renderMarkdown {
		document = markdown.Render([]byte(content.Text), content.SourceName)
		document.Encoding = content.Encoding
	} else {
		document = doc.FromText(content.Text, content.SourceName, content.Encoding)
	}

	if opt.lines != "" {
		start, end, err := ParseLineRange(opt.lines, len(document.Lines))
		if err != nil {
			return err
		}
		FilterLineRange(document, start, end)
	}

	if opt.grepPattern != "" {
		re, err := buildPattern(opt, opt.grepPattern)
		if err != nil {
			return err
		}
		before, after := opt.before, opt.after
		if opt.contextSet {
			before, after = opt.context, opt.context
		}
		document = grep.Filter(document, re, grep.Options{Before: before, After: after})
	}

	th := theme.Get(opt.theme)

	if !opt.noHighlight {
		highlight.ApplySyntax(document, opt.language, th)
	}

	var search *highlight.SearchState
	if opt.searchPattern != "" {
		re, err := buildPattern(opt, opt.searchPattern)
		if err != nil {
			return err
		}
		highlight.ApplySearch(document, re)
		search = highlight.NewSearchState(re)
		search.FindMatches(document)
	}

	if opt.noPager {
		return PrintDocument(os.Stdout, document, opt.lineNumbers)
	}

	wrapMode, ok := ui.ParseWrapMode(opt.wrap)
	if !ok {
		return fmt.Errorf("invalid wrap mode '%s' (use none, wrap or truncate)", opt.wrap)
	}
	return ui.Run(document, ui.Options{
		ShowLineNumbers: opt.lineNumbers,
		IgnoreCase:      opt.ignoreCase,
		WrapMode:        wrapMode,
		MaxWidth:        opt.maxWidth,
		FilePath:        filePath,
		Theme:           th,
		Search:          search,
		Follow:          opt.follow,
	})
}

func buildPattern(opt *options, pat string) (*regexp.Regexp, error) {
	return pattern.Build(pat, pattern.Options{
		IgnoreCase:   opt.ignoreCase,
		FixedStrings: opt.fixedStrings,
		WordRegexp:   opt.wordRegexp,
		LineRegexp:   opt.lineRegexp,
	})
}
