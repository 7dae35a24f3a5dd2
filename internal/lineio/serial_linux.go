//go:build linux

package lineio

import (
	"golang.org/x/sys/unix"
)

// The recorder talks at a fixed 9600 baud; there is no negotiation.
const portSpeed = unix.B9600

func configurePort(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}

	// Raw mode: no line editing, no CR/NL translation, no flow control. The
	// transfer format carries its own CR LF terminators.
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8

	// Readiness is driven by poll(2), not VMIN/VTIME.
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0

	t.Cflag &^= unix.CBAUD
	t.Cflag |= portSpeed
	t.Ispeed = portSpeed
	t.Ospeed = portSpeed

	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
