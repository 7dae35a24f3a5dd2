package tracklog

import (
	"errors"
	"fmt"
)

// ErrIncompleteSession is returned when the line sequence ends before the
// @EOF marker. The format has no resume mechanism, so a truncated transfer
// is not a usable result.
var ErrIncompleteSession = errors.New("tracklog: input ended before @EOF marker")

// InvalidHeaderError reports that the first line of a session did not match
// the header grammar in full.
type InvalidHeaderError struct {
	Line []byte
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("tracklog: invalid header %q", e.Line)
}

// MalformedFrameError reports a line that matched none of the three record
// grammars. It carries the raw offending line for diagnostics.
type MalformedFrameError struct {
	Line []byte
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("tracklog: malformed frame %q", e.Line)
}
