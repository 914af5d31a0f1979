//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"bufio"
	"os"

	"golang.org/x/sys/unix"
)

func readPasswordNoEcho(stdin *os.File, reader *bufio.Reader) (string, error) {
	restore, err := disableEcho(int(stdin.Fd()))
	if err != nil {
		return "", err
	}
	defer restore()
	return readLine(reader)
}

// disableEcho clears ECHO on a terminal and returns the undo. A descriptor
// that is not a terminal, such as a pipe, is left alone.
func disableEcho(fd int) (func(), error) {
	saved, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return func() {}, nil
	}

	silent := *saved
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silent); err != nil {
		return nil, err
	}
	return func() { _ = unix.IoctlSetTermios(fd, termiosWriteRequest, saved) }, nil
}
