package lineio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// readChunk is the bounded per-read size. The recorder streams short
// fixed-width records, so one chunk typically covers many lines.
const readChunk = 1024

// ErrTimeout is returned by Next when the readiness wait expires with no
// complete line buffered. It is fatal to the download; the device does not
// resume a transfer mid-stream.
var ErrTimeout = errors.New("lineio: timed out waiting for data")

// DeviceError wraps a failure to open or configure the underlying handle.
type DeviceError struct {
	Path string
	Err  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("lineio: device %s: %v", e.Path, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Reader reassembles newline-terminated lines from a serial device or a
// regular file. It is a one-shot forward iterator: lines come back strictly
// in arrival order and the sequence cannot be restarted.
type Reader struct {
	fd      int
	path    string
	timeout time.Duration

	buf    []byte
	chunk  [readChunk]byte
	eof    bool
	closed bool
}

// Open opens path for reading and writing without becoming the controlling
// terminal. A character device is put into raw 8N1 mode at 9600 baud; a
// regular file (a captured session used for replay) is left untouched and
// reads through the identical path.
func Open(path string, timeout time.Duration) (*Reader, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, &DeviceError{Path: path, Err: err}
	}

	ok := false
	defer func() {
		if !ok {
			_ = unix.Close(fd)
		}
	}()

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, &DeviceError{Path: path, Err: err}
	}
	if st.Mode&unix.S_IFMT == unix.S_IFCHR {
		if err := configurePort(fd); err != nil {
			return nil, &DeviceError{Path: path, Err: err}
		}
	}

	ok = true
	return &Reader{fd: fd, path: path, timeout: timeout}, nil
}

// Next returns the next line including its terminator. The returned slice is
// a fresh copy owned by the caller.
//
// Each wait for readability is bounded by the configured timeout; expiry with
// no complete line buffered yields ErrTimeout. A zero-byte read (end of a
// replay file, or the device closing the link) ends the sequence with io.EOF;
// trailing bytes without a terminator are discarded.
func (r *Reader) Next() ([]byte, error) {
	for {
		if i := bytes.IndexByte(r.buf, '\n'); i >= 0 {
			line := make([]byte, i+1)
			copy(line, r.buf[:i+1])
			r.buf = append(r.buf[:0], r.buf[i+1:]...)
			return line, nil
		}
		if r.eof {
			return nil, io.EOF
		}

		ready, err := r.wait()
		if err != nil {
			return nil, err
		}
		if !ready {
			return nil, ErrTimeout
		}

		n, err := unix.Read(r.fd, r.chunk[:])
		if n > 0 {
			r.buf = append(r.buf, r.chunk[:n]...)
		}
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return nil, fmt.Errorf("lineio: read %s: %w", r.path, err)
		}
		if n == 0 {
			r.eof = true
		}
	}
}

func (r *Reader) wait() (bool, error) {
	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(r.timeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("lineio: poll %s: %w", r.path, err)
		}
		return n > 0, nil
	}
}

// Close releases the underlying handle. It is idempotent so callers can
// defer it and still close early on success paths.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.fd)
}
