//go:build windows

package cli

import (
	"bufio"
	"os"

	"golang.org/x/sys/windows"
)

func readPasswordNoEcho(stdin *os.File, reader *bufio.Reader) (string, error) {
	restore, err := disableEcho(windows.Handle(stdin.Fd()))
	if err != nil {
		return "", err
	}
	defer restore()
	return readLine(reader)
}

// disableEcho clears ENABLE_ECHO_INPUT on a console and returns the undo.
// Redirected input has no console mode and is left alone.
func disableEcho(console windows.Handle) (func(), error) {
	var saved uint32
	if err := windows.GetConsoleMode(console, &saved); err != nil {
		return func() {}, nil
	}
	if err := windows.SetConsoleMode(console, saved&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, err
	}
	return func() { _ = windows.SetConsoleMode(console, saved) }, nil
}
