package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickchat/internal/domain"
	"quickchat/internal/ui"
	"quickchat/internal/util/json"
)

// upload <file>: run the media flow alone and print the server reference.
func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file and print its server reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, ok := ui.PathPicker{Path: args[0], Log: wire.Log}.PickImage(cmd.Context())
			if !ok {
				return fmt.Errorf("no readable file at %q", args[0])
			}

			media, err := wire.Media.Upload(cmd.Context(), ref)
			if err != nil {
				wire.Presenter.Notify(domain.NotifyError, "Error", err.Error())
				return nil
			}
			if url := media.FileURL(); url != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			}
			b, err := json.MarshalIndent(media.Raw, "", "  ")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
