//go:build !linux

package lineio

import "fmt"

func configurePort(fd int) error {
	return fmt.Errorf("serial devices not supported on this platform")
}
