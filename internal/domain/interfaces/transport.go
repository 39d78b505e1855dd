package interfaces

import (
	"context"

	domaintypes "quickchat/internal/domain/types"
)

// Transport is the HTTP abstraction shared by all flows.
type Transport interface {
	// SendJSON issues a GET or POST with a JSON body (nil for GET) and
	// returns the parsed response payload.
	SendJSON(ctx context.Context, method, url string, body any) (domaintypes.Payload, error)
	// SendMultipart posts file as the single "file" part of a multipart form.
	SendMultipart(ctx context.Context, url string, file domaintypes.FileRef) (domaintypes.Payload, error)
}
