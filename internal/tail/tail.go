// Package tail implements the synchronous follow reader the viewer
// polls: reopen the file each poll, deliver complete lines, carry a
// monotonic offset that resets when the file is truncated.
package tail

import (
	"io"
	"os"
	"strings"

	"mat/internal/errs"
	"mat/internal/util/logx"
)

// Reader follows one file by byte offset.
type Reader struct {
	path   string
	offset int64
}

// New creates a follow reader. With startAtEnd the first poll only
// reports lines appended after this call.
func New(path string, startAtEnd bool) (*Reader, error) {
	r := &Reader{path: path}
	if startAtEnd {
		st, err := os.Stat(path)
		if err != nil {
			return nil, &errs.IO{Path: path, Err: err}
		}
		r.offset = st.Size()
	}
	return r, nil
}

// Position is the current byte offset into the file.
func (r *Reader) Position() int64 { return r.offset }

// Poll reopens the file and returns the complete lines appended since
// the last poll. A shrunken file counts as truncation and restarts the
// reader from the beginning. A trailing partial line stays buffered in
// the file until a newline arrives.
func (r *Reader) Poll() ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &errs.IO{Path: r.path, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, &errs.IO{Path: r.path, Err: err}
	}
	if st.Size() < r.offset {
		logx.Warnf("tail: %s truncated, restarting from top", r.path)
		r.offset = 0
	}
	if st.Size() == r.offset {
		return nil, nil
	}

	if _, err := f.Seek(r.offset, io.SeekStart); err != nil {
		return nil, &errs.IO{Path: r.path, Err: err}
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &errs.IO{Path: r.path, Err: err}
	}

	last := strings.LastIndexByte(string(data), '\n')
	if last < 0 {
		return nil, nil
	}
	complete := string(data[:last])
	r.offset += int64(last) + 1

	lines := strings.Split(complete, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
