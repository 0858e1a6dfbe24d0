package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func registerCmd(app *App) *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := app.prompt(username, "Enter user name")
			if err != nil {
				return err
			}
			email, err := app.prompt(email, "Enter email")
			if err != nil {
				return err
			}
			password, err := app.input.Password()
			if err != nil {
				return err
			}

			token, err := app.api.Register(cmd.Context(), username, password, email)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Fprintln(app.out, token.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "user name (3-30 letters or digits)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}
