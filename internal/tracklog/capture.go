package tracklog

import (
	"errors"
	"fmt"
	"io"
)

// Capture copies lines from src to w verbatim, up to and including the @EOF
// marker, without decoding. The output replayed through a lineio.Reader is
// byte-for-byte equivalent decoder input, which is how sessions are captured
// for offline use without the hardware.
func Capture(src LineSource, w io.Writer) error {
	for {
		line, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrIncompleteSession
			}
			return err
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("tracklog: capture write: %w", err)
		}
		if isEndMarker(line) {
			return nil
		}
	}
}
