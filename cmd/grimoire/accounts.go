package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/terraincognita07/grimoire/internal/cli"
	"github.com/terraincognita07/grimoire/internal/config"
	"github.com/terraincognita07/grimoire/internal/db"
	"github.com/terraincognita07/grimoire/internal/services"
)

func newCreateUserCommand(configPath *string) *cobra.Command {
	var email string
	var name string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, closeStore, err := openAccountStore(*configPath)
			if err != nil {
				return err
			}
			defer closeStore()

			prompt := cli.NewPasswordPrompt(os.Stdin, cmd.ErrOrStderr())
			return cli.RunCreateUserCommand(cmd.OutOrStdout(), accounts, prompt, email, name)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCommand(configPath *string) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Replace an account password with a random temporary one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, closeStore, err := openAccountStore(*configPath)
			if err != nil {
				return err
			}
			defer closeStore()

			return cli.RunResetPasswordCommand(cmd.OutOrStdout(), accounts, email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// openAccountStore only needs the database settings, so the secret is not
// validated here.
func openAccountStore(configPath string) (cli.AccountStore, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	database, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return services.NewAuthService(db.NewUserRepository(database)), closeStore, nil
}
