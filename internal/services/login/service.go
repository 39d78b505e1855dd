package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"quickchat/internal/crypto"
	"quickchat/internal/domain"
	"quickchat/internal/transport"
)

// Backend messages recognised on a success=true reply. Anything else is an
// unrecognised shape.
const (
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid credentials"
)

const (
	invalidCredentialsMessage = "Invalid credentials"
	missingFieldsMessage      = "Please enter both fields"
	unsavedSessionWarning     = "Failed to save login token; you will need to log in again next time"
)

// ErrMissingCredentials is returned when both fields are empty. A form with
// only one field filled is sent to the backend as-is.
var ErrMissingCredentials = errors.New("email or phone and password are both empty")

// Service drives the login state machine:
//
//	Idle -> Submitting -> {Authenticated, Rejected, Failed} -> Idle
type Service struct {
	transport domain.Transport
	endpoints transport.Endpoints
	sessions  domain.SessionStore
	nav       domain.Navigator
	log       *slog.Logger

	pending atomic.Bool
	state   atomic.Int32
}

// New constructs a login Service.
func New(
	t domain.Transport,
	endpoints transport.Endpoints,
	sessions domain.SessionStore,
	nav domain.Navigator,
	log *slog.Logger,
) *Service {
	return &Service{
		transport: t,
		endpoints: endpoints,
		sessions:  sessions,
		nav:       nav,
		log:       log,
	}
}

// State reports where the current attempt is.
func (s *Service) State() domain.FlowState { return domain.FlowState(s.state.Load()) }

func (s *Service) setState(st domain.FlowState) { s.state.Store(int32(st)) }

// Submit runs one login attempt. The returned error is non-nil only when the
// attempt could not start (domain.ErrBusy); every other result is an Outcome.
func (s *Service) Submit(ctx context.Context, creds domain.Credentials) (domain.Outcome, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return domain.Outcome{}, domain.ErrBusy
	}
	defer func() {
		s.setState(domain.StateIdle)
		s.pending.Store(false)
	}()

	if creds.EmailOrPhone == "" && creds.Password == "" {
		return domain.Outcome{
			Kind:    domain.OutcomeRejected,
			Message: missingFieldsMessage,
			Err:     ErrMissingCredentials,
		}, nil
	}

	s.setState(domain.StateSubmitting)
	payload, err := s.transport.SendJSON(ctx, http.MethodPost, s.endpoints.Login(), domain.LoginRequest{
		Email:    creds.EmailOrPhone,
		Password: creds.Password,
	})
	if err != nil {
		return s.failed(err), nil
	}
	return s.classify(ctx, payload.Response()), nil
}

func (s *Service) classify(ctx context.Context, resp domain.Response) domain.Outcome {
	switch {
	case resp.Success && resp.Message == msgLoginSuccessful:
		token, ok := resp.DataString("token")
		if !ok {
			return s.failed(&domain.UnrecognizedResponseError{
				Endpoint: "login", Success: resp.Success, Message: resp.Message + " (no data.token)",
			})
		}
		out := domain.Outcome{Kind: domain.OutcomeAuthenticated, Message: "Login successful"}
		if err := s.sessions.Write(ctx, token); err != nil {
			s.log.Warn("session token not persisted", "error_kind", domain.ErrorKind(err), "err", err)
			out.Warning = unsavedSessionWarning
			out.Err = err
		}
		s.log.Info("logged in", "token_fp", crypto.Fingerprint([]byte(token)))
		s.nav.Navigate(domain.RouteHome, nil)
		return out

	case resp.Success && resp.Message == msgInvalidCredentials:
		s.log.Info("login rejected: invalid credentials")
		return domain.Outcome{Kind: domain.OutcomeInvalidCredentials, Message: invalidCredentialsMessage}

	default:
		return s.failed(&domain.UnrecognizedResponseError{
			Endpoint: "login", Success: resp.Success, Message: resp.Message,
		})
	}
}

func (s *Service) failed(err error) domain.Outcome {
	s.log.Warn("login failed", "error_kind", domain.ErrorKind(err), "err", err)
	return domain.Outcome{Kind: domain.OutcomeFailed, Message: domain.GenericFailureMessage, Err: err}
}

// Compile-time assertion that Service implements domain.LoginService.
var _ domain.LoginService = (*Service)(nil)
