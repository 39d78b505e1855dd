package commands

import (
	"github.com/spf13/cobra"

	"quickchat/internal/domain"
	"quickchat/internal/ui"
)

func registerCmd() *cobra.Command {
	var (
		form  domain.RegistrationForm
		image string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; the profile image is uploaded first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A cancelled pick leaves the image empty and the form incomplete.
			picker := ui.PathPicker{Path: image, Log: wire.Log}
			if ref, ok := picker.PickImage(cmd.Context()); ok {
				form.ProfileImage = ref
			}

			out, err := wire.Register.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			wire.Presenter.Outcome(out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FullName, "name", "", "full name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Phone, "phone", "", "10-digit phone number")
	f.StringVar(&form.Password, "password", "", "password (at least 6 characters)")
	f.StringVar(&form.ConfirmPassword, "confirm", "", "password again")
	f.StringVar(&image, "image", "", "profile image path")
	return cmd
}
