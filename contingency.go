package nfecore

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ContingencyState is a point-in-time view of a Contingency.
// The zero value with EmissionType "1" is the inactive state.
type ContingencyState struct {
	Active bool

	// StateCode is the acronym given to Activate. Snapshots do not carry it,
	// so it is empty after Load.
	StateCode string

	Motive string

	// Mode is "" (automatic), "A" or "B".
	Mode string

	ActivatedAt time.Time

	// EmissionType is the tpEmis value to use for new access keys.
	EmissionType string
}

func inactiveState() ContingencyState {
	return ContingencyState{EmissionType: EmissionNormal}
}

// Contingency tracks whether documents are issued in contingency mode.
//
// It is an explicit object: whichever component issues documents owns one and
// passes it by reference. All methods are safe for concurrent use; each
// transition is applied under a single lock so readers never see a partial
// state. The zero value is an inactive Contingency with default options.
type Contingency struct {
	mu    sync.RWMutex
	state ContingencyState

	now           func() time.Time
	automaticType string
	hook          TransitionHook
}

type ContingencyOption func(c *Contingency) error

// WithClock replaces time.Now as the source of activation timestamps.
func WithClock(now func() time.Time) ContingencyOption {
	return func(c *Contingency) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

// WithAutomaticEmissionType sets the tpEmis used when activating with the
// automatic mode.
func WithAutomaticEmissionType(emissionType string) ContingencyOption {
	return func(c *Contingency) error {
		if len(emissionType) != EmissionTypeWidth || !isDigits(emissionType) || emissionType == EmissionNormal {
			return fmt.Errorf("automatic emission type must be a single digit other than %s, got %q", EmissionNormal, emissionType)
		}
		c.automaticType = emissionType
		return nil
	}
}

// WithTransitionHook registers a hook called after every applied transition.
func WithTransitionHook(hook TransitionHook) ContingencyOption {
	return func(c *Contingency) error {
		if hook == nil {
			return fmt.Errorf("transition hook cannot be nil")
		}
		c.hook = hook
		return nil
	}
}

// NewContingency returns an inactive Contingency.
func NewContingency(opts ...ContingencyOption) (*Contingency, error) {
	c := &Contingency{
		state:         inactiveState(),
		now:           time.Now,
		automaticType: DefaultAutomaticEmissionType,
		hook:          &NoOpTransitionHook{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
	}
	return c, nil
}

// Activate switches to contingency mode and returns the JSON snapshot of the
// new state. On error the current state is left untouched.
func (c *Contingency) Activate(stateCode, motive, mode string) (string, error) {
	if n := utf8.RuneCountInString(motive); n < MinMotiveLength || n > MaxMotiveLength {
		return "", NewInvalidMotiveLengthError(n)
	}
	if !validMode(mode) {
		return "", NewInvalidModeError(mode)
	}

	next := ContingencyState{
		Active:       true,
		StateCode:    strings.ToUpper(strings.TrimSpace(stateCode)),
		Motive:       motive,
		Mode:         mode,
		ActivatedAt:  c.currentTime().Truncate(time.Second),
		EmissionType: c.emissionTypeFor(mode),
	}
	c.apply(TransitionActivated, next)
	return encodeSnapshot(next), nil
}

// Deactivate returns to normal emission. It always succeeds.
func (c *Contingency) Deactivate() string {
	next := inactiveState()
	c.apply(TransitionDeactivated, next)
	return encodeSnapshot(next)
}

// Load replaces the current state with the one encoded in snapshot.
// The motive length rule is not applied: a snapshot is trusted as written.
func (c *Contingency) Load(snapshot string) error {
	next, err := decodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	c.apply(TransitionLoaded, next)
	return nil
}

func (c *Contingency) IsActive() bool {
	return c.State().Active
}

// State returns a copy of the current state.
func (c *Contingency) State() ContingencyState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.EmissionType == "" {
		return inactiveState()
	}
	return c.state
}

// EmissionType returns the tpEmis to use when building new access keys.
func (c *Contingency) EmissionType() string {
	return c.State().EmissionType
}

// Snapshot returns the JSON form of the current state, as Activate and
// Deactivate do.
func (c *Contingency) Snapshot() string {
	return encodeSnapshot(c.State())
}

func (c *Contingency) apply(kind TransitionKind, next ContingencyState) {
	c.mu.Lock()
	prev := c.state
	if prev.EmissionType == "" {
		prev = inactiveState()
	}
	c.state = next
	c.mu.Unlock()

	if c.hook == nil {
		return
	}
	c.hook.OnTransition(Transition{
		ID:   uuid.New(),
		Kind: kind,
		From: prev,
		To:   next,
		At:   c.currentTime(),
	})
}

func (c *Contingency) currentTime() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *Contingency) emissionTypeFor(mode string) string {
	switch mode {
	case ModeAlternateA:
		return EmissionSVCAN
	case ModeAlternateB:
		return EmissionSVCRS
	default:
		if c.automaticType == "" {
			return DefaultAutomaticEmissionType
		}
		return c.automaticType
	}
}

func validMode(mode string) bool {
	return mode == ModeAutomatic || mode == ModeAlternateA || mode == ModeAlternateB
}
