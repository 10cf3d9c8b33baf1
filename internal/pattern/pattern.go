// Package pattern builds the regular expressions used by grep filtering
// and interactive search.
package pattern

import (
	"regexp"

	"mat/internal/errs"
)

// Options mirror the grep-style matching flags.
type Options struct {
	IgnoreCase   bool
	FixedStrings bool
	WordRegexp   bool
	LineRegexp   bool
}

// Build compiles pattern with the options applied in a fixed order:
// literal quoting first, then word boundaries, then whole-line anchors,
// then case folding.
func Build(pat string, opt Options) (*regexp.Regexp, error) {
	if pat == "" {
		return nil, errs.ErrEmptyPattern
	}
	p := pat
	if opt.FixedStrings {
		p = regexp.QuoteMeta(p)
	}
	if opt.WordRegexp {
		p = `\b` + p + `\b`
	}
	if opt.LineRegexp {
		p = "^" + p + "$"
	}
	if opt.IgnoreCase {
		p = "(?i)" + p
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, &errs.InvalidRegex{Pattern: pat, Err: err}
	}
	return re, nil
}
