package interfaces

import (
	"context"

	domaintypes "quickchat/internal/domain/types"
)

// Navigator moves the app to another screen.
type Navigator interface {
	Navigate(route domaintypes.Route, params map[string]string)
}

// ImagePicker lets the user choose a local image. ok=false means the user
// cancelled or the picker failed; neither is a hard error.
type ImagePicker interface {
	PickImage(ctx context.Context) (file domaintypes.FileRef, ok bool)
}

// Notifier shows a one-off alert with a title and message.
type Notifier interface {
	Notify(level domaintypes.NotifyLevel, title, message string)
}
