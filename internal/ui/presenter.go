package ui

import (
	"fmt"
	"io"

	"quickchat/internal/domain"
)

// Presenter shows flow outcomes the way the app's alert dialogs would.
type Presenter struct {
	Out io.Writer
	Err io.Writer
}

// Notify prints "title: message". Info goes to Out, the rest to Err.
func (p Presenter) Notify(level domain.NotifyLevel, title, message string) {
	w := p.Err
	if level == domain.NotifyInfo {
		w = p.Out
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", title, message)
}

// Outcome prints o with a title matching its kind, then any warning.
func (p Presenter) Outcome(o domain.Outcome) {
	level, t := classify(o.Kind)
	p.Notify(level, t, o.Message)
	if o.Warning != "" {
		p.Notify(domain.NotifyWarning, "Warning", o.Warning)
	}
}

func classify(k domain.OutcomeKind) (domain.NotifyLevel, string) {
	switch k {
	case domain.OutcomeAuthenticated, domain.OutcomeRegistered:
		return domain.NotifyInfo, "Success"
	case domain.OutcomeRejected, domain.OutcomeDuplicateAccount:
		return domain.NotifyWarning, "Warning"
	default:
		return domain.NotifyError, "Error"
	}
}

var _ domain.Notifier = Presenter{}
