package directory

import (
	"context"
	"log/slog"
	"net/http"

	"quickchat/internal/domain"
	"quickchat/internal/transport"
)

// Defaults used by the home screen's user list.
const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// Service fetches pages of the user directory.
type Service struct {
	transport domain.Transport
	endpoints transport.Endpoints
	log       *slog.Logger
}

// New returns a directory Service.
func New(t domain.Transport, endpoints transport.Endpoints, log *slog.Logger) *Service {
	return &Service{transport: t, endpoints: endpoints, log: log}
}

// ListUsers fetches one page. Non-positive page or limit fall back to the
// defaults. Transport errors are returned unchanged.
func (s *Service) ListUsers(ctx context.Context, page, limit int) (domain.Response, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	payload, err := s.transport.SendJSON(ctx, http.MethodGet, s.endpoints.Users(page, limit), nil)
	if err != nil {
		s.log.Warn("list users failed", "error_kind", domain.ErrorKind(err), "err", err)
		return domain.Response{}, err
	}
	return payload.Response(), nil
}

// Compile-time assertion that Service implements domain.DirectoryService.
var _ domain.DirectoryService = (*Service)(nil)
