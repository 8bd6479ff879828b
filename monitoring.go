package nfecore

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TransitionKind names a contingency state change.
type TransitionKind string

const (
	TransitionActivated   TransitionKind = "activated"
	TransitionDeactivated TransitionKind = "deactivated"
	TransitionLoaded      TransitionKind = "loaded"
)

// Transition describes one applied contingency state change.
type Transition struct {
	ID   uuid.UUID
	Kind TransitionKind
	From ContingencyState
	To   ContingencyState
	At   time.Time
}

// TransitionHook observes contingency transitions. Hooks run after the state
// change is applied and outside the state lock, so they may read the
// Contingency but must not block for long.
type TransitionHook interface {
	OnTransition(t Transition)
}

// NoOpTransitionHook is a no-op implementation of TransitionHook
type NoOpTransitionHook struct{}

func (n *NoOpTransitionHook) OnTransition(t Transition) {}

// LoggingTransitionHook logs every transition through slog.
type LoggingTransitionHook struct {
	logger *slog.Logger
}

// NewLoggingTransitionHook creates a logging hook; a nil logger means slog.Default().
func NewLoggingTransitionHook(logger *slog.Logger) *LoggingTransitionHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransitionHook{
		logger: logger.With("component", "contingency"),
	}
}

func (l *LoggingTransitionHook) OnTransition(t Transition) {
	attrs := []any{
		"transition_id", t.ID.String(),
		"kind", string(t.Kind),
		"from_tp_emis", t.From.EmissionType,
		"to_tp_emis", t.To.EmissionType,
	}
	if !t.To.Active {
		l.logger.Info("contingency deactivated", attrs...)
		return
	}
	attrs = append(attrs,
		"state_code", t.To.StateCode,
		"mode", ModeLabel(t.To.Mode),
		"motive", t.To.Motive,
		"activated_at", t.To.ActivatedAt.Format(time.RFC3339),
	)
	l.logger.Warn("contingency active", attrs...)
}

// MultiTransitionHook fans a transition out to several hooks in order.
type MultiTransitionHook []TransitionHook

func (m MultiTransitionHook) OnTransition(t Transition) {
	for _, h := range m {
		if h != nil {
			h.OnTransition(t)
		}
	}
}

// ModeLabel names a contingency mode for logs and metrics; the automatic
// mode, an empty string, is reported as "automatic".
func ModeLabel(mode string) string {
	if mode == ModeAutomatic {
		return "automatic"
	}
	return mode
}
