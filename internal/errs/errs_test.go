package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{&IO{Path: "x", Err: errors.New("no such file")}, 1},
		{&BinaryFile{Path: "x"}, 1},
		{&Encoding{Path: "x"}, 1},
		{ErrEmptyPattern, 1},
		{&InvalidRegex{Pattern: "[", Err: errors.New("missing closing ]")}, 2},
		{&InvalidLineRange{Range: "abc"}, 2},
		{&Usage{Err: errors.New("unknown flag: --bogus")}, 2},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWrappedErrorsKeepCode(t *testing.T) {
	err := fmt.Errorf("while filtering: %w", &InvalidRegex{Pattern: "(", Err: errors.New("unclosed group")})
	if got := ExitCode(err); got != 2 {
		t.Fatalf("wrapped exit code = %d, want 2", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &IO{Path: "/etc/shadow", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("IO does not unwrap to cause")
	}
}
