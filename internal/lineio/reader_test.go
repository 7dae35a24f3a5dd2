package lineio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func pipeReader(t *testing.T, timeout time.Duration) (*Reader, *os.File) {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	r := &Reader{fd: fds[0], path: "pipe", timeout: timeout}
	w := os.NewFile(uintptr(fds[1]), "pipe-w")
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

func TestNext_ReassemblesAcrossChunks(t *testing.T) {
	r, w := pipeReader(t, 2*time.Second)

	go func() {
		defer w.Close()
		for _, chunk := range []string{"AB", "CD\n", "EF\n"} {
			time.Sleep(10 * time.Millisecond)
			if _, err := w.WriteString(chunk); err != nil {
				return
			}
		}
	}()

	line, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if string(line) != "ABCD\n" {
		t.Fatalf("first line = %q, want %q", line, "ABCD\n")
	}

	line, err = r.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if string(line) != "EF\n" {
		t.Fatalf("second line = %q, want %q", line, "EF\n")
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("after writer close: err = %v, want io.EOF", err)
	}
}

func TestNext_Timeout(t *testing.T) {
	r, _ := pipeReader(t, 50*time.Millisecond)

	start := time.Now()
	_, err := r.Next()
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout took %s", elapsed)
	}
}

func TestNext_BufferedLinesSkipWait(t *testing.T) {
	// Once complete lines are buffered they must come back without another
	// readiness wait, even if the handle has gone quiet.
	r, w := pipeReader(t, 50*time.Millisecond)
	if _, err := w.WriteString("A\nB\n"); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, want := range []string{"A\n", "B\n"} {
		line, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if string(line) != want {
			t.Fatalf("line = %q, want %q", line, want)
		}
	}

	if _, err := r.Next(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestNext_RegularFileDropsUnterminatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.tn")
	if err := os.WriteFile(path, []byte("ONE\r\nTWO"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r, err := Open(path, time.Second)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	line, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(line) != "ONE\r\n" {
		t.Fatalf("line = %q, want %q", line, "ONE\r\n")
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestOpen_MissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), time.Second)
	if err == nil {
		t.Fatalf("expected error")
	}
	var derr *DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %T, want *DeviceError", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.tn")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	r, err := Open(path, time.Second)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
