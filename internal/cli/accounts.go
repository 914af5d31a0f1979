package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/grimoire/internal/models"
	"github.com/terraincognita07/grimoire/internal/security"
	"github.com/terraincognita07/grimoire/internal/services"
)

// AccountStore is the slice of the auth service the account commands need.
type AccountStore interface {
	CreateUser(email string, password string, name string) (models.User, error)
	SetPassword(email string, password string) (models.User, error)
}

type PasswordReader interface {
	ReadNewPassword() (string, error)
}

func RunCreateUserCommand(out io.Writer, accounts AccountStore, passwords PasswordReader, email string, name string) error {
	if services.NormalizeAuthEmail(email) == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	password, err := passwords.ReadNewPassword()
	if err != nil {
		return err
	}

	user, err := accounts.CreateUser(email, password, name)
	switch {
	case errors.Is(err, services.ErrAuthEmailExists):
		return fmt.Errorf("user %s already exists", services.NormalizeAuthEmail(email))
	case errors.Is(err, services.ErrWeakPassword):
		return errors.New("password must have at least 8 characters with letters and digits")
	case errors.Is(err, services.ErrPasswordWhitespace):
		return errors.New("password must not start or end with whitespace")
	case err != nil:
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(out, "Created user %s (id %d)\n", user.Email, user.ID)
	return nil
}

func RunResetPasswordCommand(out io.Writer, accounts AccountStore, email string) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	temporaryPassword, err := security.TemporaryPassword()
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	if _, err := accounts.SetPassword(normalizedEmail, temporaryPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}
