package commands

import (
	"github.com/spf13/cobra"

	"quickchat/internal/domain"
	"quickchat/internal/services/directory"
)

// start: run the bootstrap router. The home screen loads the user list.
func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open the app on the screen the stored session selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			route := wire.Router.SelectInitialRoute(cmd.Context())
			if route != domain.RouteHome {
				return nil
			}
			return printUsers(cmd, directory.DefaultPage, directory.DefaultLimit)
		},
	}
}
