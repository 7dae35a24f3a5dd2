package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"tnlog/internal/tracklog"
)

// captureTee copies every line it passes through into a capture file. The
// session name is only known after the header decodes, so the file starts
// out temporary and is renamed on Commit; Abort discards it.
type captureTee struct {
	src  tracklog.LineSource
	dir  string
	f    *os.File
	w    *bufio.Writer
	done bool
}

func newCaptureTee(src tracklog.LineSource, dir string) (*captureTee, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("capture dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "capture-*.tn")
	if err != nil {
		return nil, fmt.Errorf("capture file: %w", err)
	}
	return &captureTee{src: src, dir: dir, f: f, w: bufio.NewWriter(f)}, nil
}

func (c *captureTee) Next() ([]byte, error) {
	line, err := c.src.Next()
	if err != nil {
		return nil, err
	}
	if _, err := c.w.Write(line); err != nil {
		return nil, fmt.Errorf("capture write: %w", err)
	}
	return line, nil
}

func (c *captureTee) Commit(name string) (string, error) {
	if c.done {
		return "", fmt.Errorf("capture already finished")
	}
	c.done = true
	if err := c.w.Flush(); err != nil {
		_ = c.f.Close()
		return "", fmt.Errorf("capture flush: %w", err)
	}
	if err := c.f.Close(); err != nil {
		return "", fmt.Errorf("capture close: %w", err)
	}
	path := filepath.Join(c.dir, name)
	if err := os.Rename(c.f.Name(), path); err != nil {
		return "", fmt.Errorf("capture rename: %w", err)
	}
	return path, nil
}

// Abort drops the temporary file. Safe to defer alongside Commit; it does
// nothing once the capture is committed.
func (c *captureTee) Abort() {
	if c.done {
		return
	}
	c.done = true
	_ = c.f.Close()
	_ = os.Remove(c.f.Name())
}
