package cli

import (
	"io"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/client/client"
	"github.com/dmitrijs2005/placeholder/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Input prompts read from in and all
// output goes to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		configPath string
		address    string
		timeout    time.Duration
		app        *App
	)

	cmd := &cobra.Command{
		Use:           "cli",
		Short:         "Command-line client for the user service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.ServerURL = address
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			app = NewApp(cfg, in, out)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (JSON)")
	cmd.PersistentFlags().StringVarP(&address, "address", "a", "", "Server base URL")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout")

	var username string
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Login(cmd.Context(), username)
		},
	}
	login.Flags().StringVarP(&username, "username", "u", "", "Username")

	var reg client.Registration
	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Register(cmd.Context(), reg)
		},
	}
	register.Flags().StringVarP(&reg.Username, "username", "u", "", "Username")
	register.Flags().StringVarP(&reg.Email, "email", "e", "", "Email")
	register.Flags().StringVar(&reg.Name, "name", "", "Display name")
	register.Flags().StringVar(&reg.Phone, "phone", "", "Phone")
	register.Flags().StringVar(&reg.Website, "website", "", "Website")

	var token string
	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the user a token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.WhoAmI(cmd.Context(), token)
		},
	}
	whoami.Flags().StringVarP(&token, "token", "t", "", "Bearer token")

	cmd.AddCommand(login, register, whoami)
	return cmd
}
