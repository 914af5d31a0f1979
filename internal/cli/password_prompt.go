package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordEmpty    = errors.New("password is required")
)

// PasswordPrompt reads a new password twice from a terminal without echo.
type PasswordPrompt struct {
	stdin  *os.File
	reader *bufio.Reader
	out    io.Writer
}

func NewPasswordPrompt(stdin *os.File, out io.Writer) *PasswordPrompt {
	return &PasswordPrompt{stdin: stdin, reader: bufio.NewReader(stdin), out: out}
}

func (prompt *PasswordPrompt) ReadNewPassword() (string, error) {
	if prompt.stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	fmt.Fprint(prompt.out, "Password: ")
	password, err := readPasswordNoEcho(prompt.stdin, prompt.reader)
	fmt.Fprintln(prompt.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if password == "" {
		return "", ErrPasswordEmpty
	}

	fmt.Fprint(prompt.out, "Confirm password: ")
	confirmation, err := readPasswordNoEcho(prompt.stdin, prompt.reader)
	fmt.Fprintln(prompt.out)
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirmation {
		return "", ErrPasswordMismatch
	}
	return password, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}
