package commands

import (
	"github.com/spf13/cobra"

	"quickchat/internal/domain"
)

func loginCmd() *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := wire.Login.Submit(cmd.Context(), creds)
			if err != nil {
				return err
			}
			wire.Presenter.Outcome(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.EmailOrPhone, "email", "", "email or phone number")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password")
	return cmd
}
