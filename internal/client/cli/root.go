package cli

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/spf13/cobra"
)

// API is what the commands need from the server.
type API interface {
	Register(ctx context.Context, username, password, email string) (*client.Token, error)
	Login(ctx context.Context, username, password string) (*client.Token, error)
	CurrentUser(ctx context.Context, token string) (*client.Profile, error)
}

// App carries state shared by all commands of one invocation.
type App struct {
	config *config.Config
	api    API
	input  *prompter
	out    io.Writer
}

// NewRootCommand builds the command tree reading answers from in and
// writing to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var (
		configPath string
		serverURL  string
		timeout    time.Duration
	)

	app := &App{input: newPrompter(in, out), out: out}

	cmd := &cobra.Command{
		Use:   "authkeeper",
		Short: "Command line client for the authkeeper service",
		Long: `Command line client for the authkeeper service.

Examples:
  authkeeper register -u alice -e alice@example.com
  authkeeper login -u alice
  authkeeper whoami --token <access token>
  authkeeper --server http://auth.local:8000 login
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = serverURL
			}
			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = timeout
			}
			app.config = cfg
			app.api = client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
			return nil
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "authkeeper server URL (overrides config)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout (overrides config)")

	cmd.AddCommand(registerCmd(app), loginCmd(app), whoamiCmd(app))

	return cmd
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context, in io.Reader, out io.Writer) error {
	return NewRootCommand(in, out).ExecuteContext(ctx)
}

// prompt returns value when set and asks for it otherwise.
func (a *App) prompt(value, question string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.input.Line(question)
}
