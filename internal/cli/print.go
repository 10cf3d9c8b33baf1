package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mat/internal/doc"
	"mat/internal/errs"
)

// ParseLineRange reads a --lines argument: "X", "X:Y", ":Y" or "X:".
// Line numbers are 1-based and inclusive; the end is clamped to the
// document length.
func ParseLineRange(rng string, totalLines int) (int, int, error) {
	r := strings.TrimSpace(rng)
	if r == "" {
		return 0, 0, &errs.InvalidLineRange{Range: r}
	}

	if startStr, endStr, found := strings.Cut(r, ":"); found {
		start := 1
		if startStr != "" {
			n, err := strconv.Atoi(startStr)
			if err != nil || n < 0 {
				return 0, 0, &errs.InvalidLineRange{Range: r}
			}
			start = n
		}
		end := totalLines
		if endStr != "" {
			n, err := strconv.Atoi(endStr)
			if err != nil || n < 0 {
				return 0, 0, &errs.InvalidLineRange{Range: r}
			}
			end = n
		}
		if start == 0 || end == 0 || start > end {
			return 0, 0, &errs.InvalidLineRange{Range: r}
		}
		if end > totalLines {
			end = totalLines
		}
		return start, end, nil
	}

	line, err := strconv.Atoi(r)
	if err != nil || line <= 0 || line > totalLines {
		return 0, 0, &errs.InvalidLineRange{Range: r}
	}
	return line, line, nil
}

// FilterLineRange keeps only lines numbered within [start, end].
func FilterLineRange(d *doc.Document, start, end int) {
	kept := d.Lines[:0]
	for _, l := range d.Lines {
		if l.Number >= start && l.Number <= end {
			kept = append(kept, l)
		}
	}
	d.Lines = kept
	d.RecalcMaxWidth()
}

// PrintDocument writes the document without paging.
func PrintDocument(w io.Writer, d *doc.Document, showLineNumbers bool) error {
	gutterWidth := 0
	if showLineNumbers {
		max := len(d.Lines)
		if max == 0 {
			gutterWidth = 3
		} else {
			digits := 1
			for max >= 10 {
				digits++
				max /= 10
			}
			gutterWidth = digits + 2
		}
	}

	bw := bufio.NewWriter(w)
	for _, l := range d.Lines {
		if showLineNumbers {
			fmt.Fprintf(bw, "%*d ", gutterWidth-2, l.Number)
		}
		fmt.Fprintln(bw, l.Text())
	}
	return bw.Flush()
}
