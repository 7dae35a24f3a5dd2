package tracklog

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// LineSource yields complete lines, terminator included, in arrival order.
// io.EOF marks exhaustion; any other error aborts the decode unchanged.
// lineio.Reader satisfies this, as does any replay over captured bytes.
type LineSource interface {
	Next() ([]byte, error)
}

// Point is one decoded track sample.
type Point struct {
	Time      time.Time
	Lat       float64
	Lon       float64
	Elevation int
}

// Session is the result of one successful decode: the header metadata plus
// the track in decode order, which is also time order for sessions that do
// not cross local midnight.
type Session struct {
	Header Header
	Track  []Point
}

// Name derives a stable session name for output files from the takeoff time
// and the recorder serial number, e.g. "20240514-1030-1A2F".
func (s *Session) Name() string {
	return fmt.Sprintf("%s-%04X", s.Header.RecordedAt.Format("20060102-1504"), s.Header.SerialNumber)
}

// Decode consumes lines from src until the @EOF marker and returns the
// decoded session. The first line must be a header; every later line must
// match exactly one of the flight-data, time-resync or end-marker grammars.
// Any failure is fatal: InvalidHeaderError, MalformedFrameError,
// ErrIncompleteSession on premature exhaustion, or the source's own error
// (such as lineio.ErrTimeout) passed through untouched.
func Decode(src LineSource) (*Session, error) {
	line, err := src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrIncompleteSession
		}
		return nil, err
	}
	hdr, ok := parseHeader(line)
	if !ok {
		return nil, &InvalidHeaderError{Line: line}
	}

	sess := &Session{Header: hdr}
	t := hdr.RecordedAt

	for {
		line, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrIncompleteSession
			}
			return nil, err
		}

		// Flight-data records dominate the stream, so try them first.
		if f, ok := parseFix(line); ok {
			sess.Track = append(sess.Track, Point{
				Time:      t,
				Lat:       f.lat,
				Lon:       f.lon,
				Elevation: f.elevation,
			})
			t = t.Add(time.Second)
			continue
		}
		if rs, ok := parseResync(line); ok {
			// Re-anchor the cursor: the resync carries the local wall clock,
			// valid on the header's calendar date; the UTC offset converts it
			// back to the track's time base.
			d := hdr.RecordedAt
			t = time.Date(d.Year(), d.Month(), d.Day(), rs.hour, rs.min, rs.sec, 0, d.Location()).Add(-hdr.UTCOffset)
			continue
		}
		if isEndMarker(line) {
			return sess, nil
		}
		return nil, &MalformedFrameError{Line: line}
	}
}
