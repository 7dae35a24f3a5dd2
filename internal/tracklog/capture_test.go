package tracklog

import (
	"bytes"
	"errors"
	"testing"
)

func TestCapture_Verbatim(t *testing.T) {
	lines := [][]byte{
		testHeaderLine(),
		resyncLine("100000"),
		fixLine("000001", "0176C0", "0320"),
		fixLine("000002", "0176C1", "0321"),
		[]byte("@EOF\r\n"),
	}
	src := &sliceSource{lines: lines}

	var out bytes.Buffer
	if err := Capture(src, &out); err != nil {
		t.Fatalf("capture: %v", err)
	}

	want := bytes.Join(lines, nil)
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("capture output differs from input:\n got %q\nwant %q", out.Bytes(), want)
	}
}

func TestCapture_StopsAtEndMarker(t *testing.T) {
	src := &sliceSource{lines: [][]byte{
		testHeaderLine(),
		[]byte("@EOF\r\n"),
		[]byte("junk after eof\r\n"),
	}}

	var out bytes.Buffer
	if err := Capture(src, &out); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(src.lines) != 1 {
		t.Fatalf("capture consumed past the end marker")
	}
	if !bytes.HasSuffix(out.Bytes(), []byte("@EOF\r\n")) {
		t.Fatalf("output does not end with the marker: %q", out.Bytes())
	}
}

func TestCapture_MissingEOFMarker(t *testing.T) {
	src := &sliceSource{lines: [][]byte{
		testHeaderLine(),
		fixLine("000001", "0176C0", "0320"),
	}}

	var out bytes.Buffer
	if err := Capture(src, &out); !errors.Is(err, ErrIncompleteSession) {
		t.Fatalf("err = %v, want ErrIncompleteSession", err)
	}
}

func TestCapture_RoundTripsThroughDecode(t *testing.T) {
	lines := [][]byte{
		testHeaderLine(),
		resyncLine("100000"),
		fixLine("000001", "0176C0", "0320"),
		[]byte("@EOF\r\n"),
	}

	var out bytes.Buffer
	if err := Capture(&sliceSource{lines: lines}, &out); err != nil {
		t.Fatalf("capture: %v", err)
	}

	// The captured bytes, split back into lines, decode identically to the
	// live stream.
	var replay [][]byte
	rest := out.Bytes()
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '\n')
		replay = append(replay, rest[:i+1])
		rest = rest[i+1:]
	}
	sess, err := Decode(&sliceSource{lines: replay})
	if err != nil {
		t.Fatalf("decode of capture: %v", err)
	}
	if len(sess.Track) != 1 {
		t.Fatalf("track len = %d, want 1", len(sess.Track))
	}
}
