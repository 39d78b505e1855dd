package types

// FlowState is the state of a credential flow's state machine.
type FlowState int

const (
	StateIdle FlowState = iota
	StateValidating
	StateUploading
	StateSubmitting
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateUploading:
		return "uploading"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// OutcomeKind is the terminal result of one flow attempt.
type OutcomeKind int

const (
	OutcomeFailed OutcomeKind = iota
	OutcomeRejected
	OutcomeAuthenticated
	OutcomeInvalidCredentials
	OutcomeUploadFailed
	OutcomeRegistered
	OutcomeDuplicateAccount
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFailed:
		return "failed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeUploadFailed:
		return "upload_failed"
	case OutcomeRegistered:
		return "registered"
	case OutcomeDuplicateAccount:
		return "duplicate_account"
	default:
		return "unknown"
	}
}

// GenericFailureMessage is shown for every failure the user cannot act on.
const GenericFailureMessage = "Something went wrong. Please try again later."

// Outcome is what a flow surfaces to the user once it returns to idle.
//
// Message is user-facing. Warning is set when the attempt succeeded but
// something non-fatal went wrong (for example the session could not be
// persisted). Err keeps the internal cause so callers can log or inspect it.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Warning string
	Err     error
}

// OK reports whether the attempt reached its success state.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeAuthenticated || o.Kind == OutcomeRegistered
}
