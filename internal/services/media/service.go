package media

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"quickchat/internal/domain"
	"quickchat/internal/transport"
	"quickchat/internal/util/json"
)

const (
	// defaultFileName is used when no name can be derived from the URI.
	defaultFileName = "uploaded_file.pdf"
	// uploadContentType is declared for every upload; the type is not sniffed.
	uploadContentType = "application/pdf"

	defaultFailureMessage = "Upload failed"
)

// Service uploads files through the transport's multipart path.
type Service struct {
	transport domain.Transport
	endpoints transport.Endpoints
	log       *slog.Logger
}

// New returns a media Service.
func New(t domain.Transport, endpoints transport.Endpoints, log *slog.Logger) *Service {
	return &Service{transport: t, endpoints: endpoints, log: log}
}

// Upload sends file as the single "file" part and returns the data field of
// the response. Every failure, including a response whose data is missing or falsy, is an
// *domain.UploadFailedError.
func (s *Service) Upload(ctx context.Context, file domain.FileRef) (domain.MediaReference, error) {
	if file.IsZero() {
		return domain.MediaReference{}, &domain.UploadFailedError{Message: "no file selected"}
	}

	ref := domain.FileRef{
		URI:         file.URI,
		Name:        FileName(file.URI),
		ContentType: uploadContentType,
	}
	log := s.log.With("file", ref.Name)

	payload, err := s.transport.SendMultipart(ctx, s.endpoints.Upload(), ref)
	if err != nil {
		log.Warn("media upload failed", "error_kind", domain.ErrorKind(err), "err", err)
		return domain.MediaReference{}, &domain.UploadFailedError{Message: failureMessage(err), Err: err}
	}

	out := domain.MediaReference{Raw: payload.Response().Data}
	if out.IsZero() {
		log.Warn("media upload returned no reference", "data", out.Raw)
		return domain.MediaReference{}, &domain.UploadFailedError{Message: defaultFailureMessage}
	}

	if out.FileURL() == "" {
		// Callers read fileUrl from the reference; the backend is expected to
		// return an object carrying it.
		log.Warn("upload reference has no fileUrl field")
	}
	log.Debug("media uploaded", "file_url", out.FileURL())
	return out, nil
}

// FileName derives a file name from the last path segment of uri.
func FileName(uri string) string {
	uri = strings.TrimSpace(uri)
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		uri = uri[i+1:]
	}
	if uri == "" {
		return defaultFileName
	}
	return uri
}

// failureMessage prefers the message field of a JSON error body.
func failureMessage(err error) string {
	var httpErr *domain.TransportError
	if !errors.As(err, &httpErr) {
		return defaultFailureMessage
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(httpErr.Body), &body) != nil || body.Message == "" {
		return defaultFailureMessage
	}
	return body.Message
}

// Compile-time assertion that Service implements domain.MediaService.
var _ domain.MediaService = (*Service)(nil)
