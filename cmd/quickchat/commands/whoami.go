package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickchat/internal/crypto"
)

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show whether a session token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, ok, err := wire.Sessions.Read(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in (token %s)\n", crypto.Fingerprint([]byte(token)))
			return nil
		},
	}
}
