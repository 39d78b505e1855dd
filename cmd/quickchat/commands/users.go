package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickchat/internal/domain"
	"quickchat/internal/services/directory"
	"quickchat/internal/util/json"
)

func usersCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printUsers(cmd, page, limit)
		},
	}
	cmd.Flags().IntVar(&page, "page", directory.DefaultPage, "page number")
	cmd.Flags().IntVar(&limit, "limit", directory.DefaultLimit, "page size")
	return cmd
}

// printUsers prints one directory page as indented JSON. A failed fetch is
// shown as an alert, not returned.
func printUsers(cmd *cobra.Command, page, limit int) error {
	resp, err := wire.Directory.ListUsers(cmd.Context(), page, limit)
	if err != nil {
		wire.Presenter.Notify(domain.NotifyError, "Error", domain.GenericFailureMessage)
		return nil
	}
	b, err := json.MarshalIndent(resp.Data, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
