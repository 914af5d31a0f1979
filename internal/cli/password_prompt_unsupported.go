//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"bufio"
	"os"
)

func readPasswordNoEcho(_ *os.File, reader *bufio.Reader) (string, error) {
	return readLine(reader)
}
