package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// TokenEnvVar is read when --token is not given.
const TokenEnvVar = "AUTHKEEPER_TOKEN"

func whoamiCmd(app *App) *cobra.Command {
	var (
		token      string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile behind an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv(TokenEnvVar)
			}
			if token == "" {
				return errors.New("no token: pass --token or set " + TokenEnvVar)
			}

			p, err := app.api.CurrentUser(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("whoami failed: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(app.out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}

			fmt.Fprintf(app.out, "user_id:  %d\nusername: %s\nemail:    %s\ntoken:    %s\n",
				p.UserID, p.Username, p.Email, p.Token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "access token (default $"+TokenEnvVar+")")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "print the profile as JSON")
	return cmd
}
