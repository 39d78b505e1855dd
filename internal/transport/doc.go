// Package transport is the HTTP layer shared by every client flow.
//
// It supports exactly three call shapes against the QuickChat backend:
//   - JSON POST with a request body.
//   - JSON GET.
//   - Multipart POST carrying a single "file" part.
//
// Responses are always read in full as raw bytes and only then parsed as
// JSON. Non-2xx statuses become *types.TransportError carrying the raw body;
// connectivity failures become *types.NetworkError; a 2xx body that is not
// JSON becomes *types.DecodeError. Payload shape is not validated here.
//
// Every request carries an X-Request-ID and the current W3C trace context.
package transport
