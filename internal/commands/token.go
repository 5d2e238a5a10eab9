package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/latch/internal/auth"
	"github.com/balkashynov/latch/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token [user]",
	Short: "Mint an API token",
	Long: `Print a bearer token for the HTTP API. The token belongs to the given
user, or to the configured user when none is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		user := cfg.User
		if len(args) == 1 {
			user = args[0]
		}

		tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		token, expiresAt, err := tokens.Issue(user)
		if err != nil {
			return err
		}

		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			fmt.Println(token)
			return nil
		}
		fmt.Printf("🔑 Token for %s (expires %s):\n%s\n", user, expiresAt.Format("02/01/2006 15:04"), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().BoolP("quiet", "q", false, "Print only the token")
}
