package interfaces

import (
	"context"

	domaintypes "quickchat/internal/domain/types"
)

// LoginService authenticates with email-or-phone and password.
type LoginService interface {
	Submit(ctx context.Context, creds domaintypes.Credentials) (domaintypes.Outcome, error)
	State() domaintypes.FlowState
}

// RegisterService validates a sign-up form, uploads the profile image and
// creates the account.
type RegisterService interface {
	Submit(ctx context.Context, form domaintypes.RegistrationForm) (domaintypes.Outcome, error)
	State() domaintypes.FlowState
}

// MediaService uploads a local file and returns its server reference.
type MediaService interface {
	Upload(ctx context.Context, file domaintypes.FileRef) (domaintypes.MediaReference, error)
}

// Router picks the first screen and handles logout.
type Router interface {
	SelectInitialRoute(ctx context.Context) domaintypes.Route
	Selected() (domaintypes.Route, bool)
	Logout(ctx context.Context) error
}

// DirectoryService lists registered users.
type DirectoryService interface {
	ListUsers(ctx context.Context, page, limit int) (domaintypes.Response, error)
}
