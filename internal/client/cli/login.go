package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd(app *App) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print the access token",
		Long: `Authenticate and print the access token.

While the previously issued token is still valid the server hands out the
same token again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := app.prompt(username, "Enter user name")
			if err != nil {
				return err
			}
			password, err := app.input.Password()
			if err != nil {
				return err
			}

			token, err := app.api.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintln(app.out, token.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	return cmd
}
