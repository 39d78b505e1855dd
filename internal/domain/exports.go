package domain

import (
	interfaces "quickchat/internal/domain/interfaces"
	types "quickchat/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Route             = types.Route
	FileRef           = types.FileRef
	NotifyLevel       = types.NotifyLevel
	Credentials       = types.Credentials
	LoginRequest      = types.LoginRequest
	RegistrationForm  = types.RegistrationForm
	RegisterRequest   = types.RegisterRequest
	Payload           = types.Payload
	Response          = types.Response
	MediaReference    = types.MediaReference
	FlowState         = types.FlowState
	OutcomeKind       = types.OutcomeKind
	Outcome           = types.Outcome
	NetworkError      = types.NetworkError
	TransportError    = types.TransportError
	DecodeError       = types.DecodeError
	PersistenceError  = types.PersistenceError
	UploadFailedError = types.UploadFailedError

	UnrecognizedResponseError = types.UnrecognizedResponseError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Transport        = interfaces.Transport
	KeyValueStore    = interfaces.KeyValueStore
	SessionStore     = interfaces.SessionStore
	Navigator        = interfaces.Navigator
	ImagePicker      = interfaces.ImagePicker
	Notifier         = interfaces.Notifier
	LoginService     = interfaces.LoginService
	RegisterService  = interfaces.RegisterService
	MediaService     = interfaces.MediaService
	Router           = interfaces.Router
	DirectoryService = interfaces.DirectoryService
)

// Routes, flow states and outcome kinds re-exported for callers that only
// import domain.
const (
	RouteLanding  = types.RouteLanding
	RouteLogin    = types.RouteLogin
	RouteRegister = types.RouteRegister
	RouteHome     = types.RouteHome

	NotifyInfo    = types.NotifyInfo
	NotifyWarning = types.NotifyWarning
	NotifyError   = types.NotifyError

	StateIdle       = types.StateIdle
	StateValidating = types.StateValidating
	StateUploading  = types.StateUploading
	StateSubmitting = types.StateSubmitting

	OutcomeFailed             = types.OutcomeFailed
	OutcomeRejected           = types.OutcomeRejected
	OutcomeAuthenticated      = types.OutcomeAuthenticated
	OutcomeInvalidCredentials = types.OutcomeInvalidCredentials
	OutcomeUploadFailed       = types.OutcomeUploadFailed
	OutcomeRegistered         = types.OutcomeRegistered
	OutcomeDuplicateAccount   = types.OutcomeDuplicateAccount

	GenericFailureMessage = types.GenericFailureMessage
)

// ErrBusy is returned when a flow is re-entered while pending.
var ErrBusy = types.ErrBusy

// ErrorKind names the taxonomy bucket of err for logging.
func ErrorKind(err error) string { return types.ErrorKind(err) }
