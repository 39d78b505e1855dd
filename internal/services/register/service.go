package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"quickchat/internal/domain"
	"quickchat/internal/transport"
)

// Backend messages recognised on a success=true reply.
const (
	msgRegistered          = "User registered successfully"
	msgEmailAndPhoneExists = "User with this email and phone already exists"
	msgEmailExists         = "User with this email already exists"
	msgPhoneExists         = "User with this phone number already exists"
)

const (
	registeredMessage   = "User registered successfully. You can now log in"
	uploadFailedMessage = "Failed to upload media"
)

var duplicateMessages = map[string]bool{
	msgEmailAndPhoneExists: true,
	msgEmailExists:         true,
	msgPhoneExists:         true,
}

// Service drives the registration state machine:
//
//	Idle -> Validating -> Rejected
//	                   -> Uploading -> UploadFailed
//	                                -> Submitting -> {Registered, DuplicateAccount, Failed}
//
// and back to Idle once the outcome is returned.
type Service struct {
	transport domain.Transport
	endpoints transport.Endpoints
	media     domain.MediaService
	nav       domain.Navigator
	validator *Validator
	log       *slog.Logger

	pending atomic.Bool
	state   atomic.Int32
}

// New constructs a register Service.
func New(
	t domain.Transport,
	endpoints transport.Endpoints,
	media domain.MediaService,
	nav domain.Navigator,
	log *slog.Logger,
) *Service {
	return &Service{
		transport: t,
		endpoints: endpoints,
		media:     media,
		nav:       nav,
		validator: NewValidator(),
		log:       log,
	}
}

// State reports where the current attempt is.
func (s *Service) State() domain.FlowState { return domain.FlowState(s.state.Load()) }

func (s *Service) setState(st domain.FlowState) { s.state.Store(int32(st)) }

// Submit runs one registration attempt. The returned error is non-nil only
// when the attempt could not start (domain.ErrBusy).
func (s *Service) Submit(ctx context.Context, form domain.RegistrationForm) (domain.Outcome, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return domain.Outcome{}, domain.ErrBusy
	}
	defer func() {
		s.setState(domain.StateIdle)
		s.pending.Store(false)
	}()

	s.setState(domain.StateValidating)
	if err := s.validator.Validate(form); err != nil {
		s.log.Info("registration form rejected", "reason", err)
		return domain.Outcome{Kind: domain.OutcomeRejected, Message: UserMessage(err), Err: err}, nil
	}

	// The upload always completes before the register call starts.
	s.setState(domain.StateUploading)
	ref, err := s.media.Upload(ctx, form.ProfileImage)
	if err == nil && ref.IsZero() {
		err = &domain.UploadFailedError{Message: "no media reference returned"}
	}
	if err != nil {
		var upErr *domain.UploadFailedError
		if !errors.As(err, &upErr) {
			err = &domain.UploadFailedError{Message: "Upload failed", Err: err}
		}
		s.log.Warn("registration aborted: upload failed", "err", err)
		return domain.Outcome{Kind: domain.OutcomeUploadFailed, Message: uploadFailedMessage, Err: err}, nil
	}

	s.setState(domain.StateSubmitting)
	payload, err := s.transport.SendJSON(ctx, http.MethodPost, s.endpoints.Register(), form.Request(ref.FileURL()))
	if err != nil {
		return s.failed(err), nil
	}
	return s.classify(payload.Response()), nil
}

func (s *Service) classify(resp domain.Response) domain.Outcome {
	switch {
	case resp.Success && resp.Message == msgRegistered:
		s.log.Info("registered")
		s.nav.Navigate(domain.RouteLogin, nil)
		return domain.Outcome{Kind: domain.OutcomeRegistered, Message: registeredMessage}

	case resp.Success && duplicateMessages[resp.Message]:
		s.log.Info("registration rejected: duplicate account", "message", resp.Message)
		return domain.Outcome{Kind: domain.OutcomeDuplicateAccount, Message: resp.Message}

	default:
		return s.failed(&domain.UnrecognizedResponseError{
			Endpoint: "register", Success: resp.Success, Message: resp.Message,
		})
	}
}

func (s *Service) failed(err error) domain.Outcome {
	s.log.Warn("registration failed", "error_kind", domain.ErrorKind(err), "err", err)
	return domain.Outcome{Kind: domain.OutcomeFailed, Message: domain.GenericFailureMessage, Err: err}
}

// Compile-time assertion that Service implements domain.RegisterService.
var _ domain.RegisterService = (*Service)(nil)
