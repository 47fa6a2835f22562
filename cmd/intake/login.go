package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/plaide-ai/intake/internal/model"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	Long: `Authenticate against the backend and print the issued token. Export it as
INTAKE_TOKEN for subsequent commands; the client stores and attaches tokens but
never issues or renews them itself. The password is read from INTAKE_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("INTAKE_PASSWORD")
		if password == "" {
			return fmt.Errorf("set INTAKE_PASSWORD before logging in")
		}

		resp, err := a.authClient.Login(cmd.Context(), &model.LoginRequest{
			Email:    loginEmail,
			Password: password,
		})
		if err != nil {
			return err
		}

		if a.tokens.Expired(time.Now()) {
			a.log.Warn("backend issued an already-expired token")
		}

		fmt.Printf("Logged in as %s\n", resp.User.Email)
		fmt.Printf("export INTAKE_TOKEN=%s\n", resp.AccessToken)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.MarkFlagRequired("email")
}
