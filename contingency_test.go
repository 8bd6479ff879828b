package nfecore

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMotive = "Teste de contingência"

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("BRT", -3*60*60))

func newTestContingency(t *testing.T, opts ...ContingencyOption) *Contingency {
	t.Helper()
	opts = append([]ContingencyOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	c, err := NewContingency(opts...)
	require.NoError(t, err)
	return c
}

func decodeTestSnapshot(t *testing.T, raw string) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestContingency_StartsInactive(t *testing.T) {
	c := newTestContingency(t)

	assert.False(t, c.IsActive())
	assert.Equal(t, EmissionNormal, c.EmissionType())
	assert.Equal(t, inactiveState(), c.State())
	assert.JSONEq(t, `{"type":"","motive":"","timestamp":"","tpEmis":"1"}`, c.Snapshot())
}

func TestContingency_ActivateDeactivate(t *testing.T) {
	c := newTestContingency(t)

	snapshot, err := c.Activate("SP", testMotive, ModeAlternateA)
	require.NoError(t, err)

	snap := decodeTestSnapshot(t, snapshot)
	assert.Equal(t, "A", snap["type"])
	assert.Equal(t, testMotive, snap["motive"])
	assert.Equal(t, "2024-01-15T10:30:00-03:00", snap["timestamp"])
	assert.Equal(t, EmissionSVCAN, snap["tpEmis"])

	assert.True(t, c.IsActive())
	assert.Equal(t, EmissionSVCAN, c.EmissionType())
	state := c.State()
	assert.Equal(t, "SP", state.StateCode)
	assert.True(t, state.ActivatedAt.Equal(fixedNow))

	inactive := c.Deactivate()
	assert.False(t, c.IsActive())
	assert.Equal(t, EmissionNormal, c.EmissionType())
	assert.Equal(t, "1", decodeTestSnapshot(t, inactive)["tpEmis"])
}

func TestContingency_Modes(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		opts   []ContingencyOption
		tpEmis string
	}{
		{"alternate A", ModeAlternateA, nil, EmissionSVCAN},
		{"alternate B", ModeAlternateB, nil, EmissionSVCRS},
		{"automatic", ModeAutomatic, nil, DefaultAutomaticEmissionType},
		{"automatic overridden", ModeAutomatic, []ContingencyOption{WithAutomaticEmissionType("6")}, "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContingency(t, tt.opts...)
			snapshot, err := c.Activate("rs", testMotive, tt.mode)
			require.NoError(t, err)

			assert.True(t, c.IsActive())
			assert.Equal(t, tt.tpEmis, c.EmissionType())
			assert.Equal(t, tt.mode, decodeTestSnapshot(t, snapshot)["type"])
			assert.Equal(t, "RS", c.State().StateCode)
		})
	}
}

func TestContingency_ActivateRejectsMotive(t *testing.T) {
	tests := []struct {
		name   string
		motive string
	}{
		{"too short", "too short"},
		{"fourteen chars", strings.Repeat("a", 14)},
		{"too long", strings.Repeat("a", 256)},
		{"empty", ""},
		// 14 characters, 28 bytes: length is counted in characters
		{"multibyte short", strings.Repeat("ç", 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContingency(t)
			_, err := c.Activate("SP", tt.motive, ModeAlternateA)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMotiveLength)
			assert.False(t, c.IsActive())
			assert.Equal(t, EmissionNormal, c.EmissionType())
		})
	}
}

func TestContingency_MotiveBounds(t *testing.T) {
	for _, motive := range []string{strings.Repeat("a", 15), strings.Repeat("é", 255)} {
		c := newTestContingency(t)
		_, err := c.Activate("SP", motive, ModeAlternateB)
		assert.NoError(t, err)
	}
}

func TestContingency_ActivateRejectsMode(t *testing.T) {
	for _, mode := range []string{"SVCAN", "a", "C", " "} {
		c := newTestContingency(t)
		_, err := c.Activate("SP", testMotive, mode)
		assert.ErrorIs(t, err, ErrInvalidMode, mode)
		assert.False(t, c.IsActive())
	}
}

func TestContingency_FailedActivateKeepsActiveState(t *testing.T) {
	c := newTestContingency(t)
	_, err := c.Activate("SP", testMotive, ModeAlternateB)
	require.NoError(t, err)
	before := c.State()

	_, err = c.Activate("SP", "too short", ModeAlternateA)
	require.ErrorIs(t, err, ErrInvalidMotiveLength)
	assert.Equal(t, before, c.State())
}

func TestContingency_DeactivateIsIdempotent(t *testing.T) {
	c := newTestContingency(t)
	first := c.Deactivate()
	second := c.Deactivate()

	assert.Equal(t, first, second)
	assert.False(t, c.IsActive())
}

func TestContingency_LoadRoundTrip(t *testing.T) {
	source := newTestContingency(t)
	snapshot, err := source.Activate("SP", testMotive, ModeAlternateB)
	require.NoError(t, err)

	restored := newTestContingency(t)
	require.NoError(t, restored.Load(snapshot))

	assert.True(t, restored.IsActive())
	assert.Equal(t, EmissionSVCRS, restored.EmissionType())
	assert.Equal(t, snapshot, restored.Snapshot())

	require.NoError(t, restored.Load(source.Deactivate()))
	assert.False(t, restored.IsActive())
}

func TestContingency_LoadDoesNotCheckMotiveLength(t *testing.T) {
	c := newTestContingency(t)
	err := c.Load(`{"type":"A","motive":"Teste","timestamp":"2024-01-01T00:00:00Z","tpEmis":"6"}`)
	require.NoError(t, err)

	assert.True(t, c.IsActive())
	assert.Equal(t, "Teste", c.State().Motive)
	assert.Equal(t, "", c.State().StateCode)
}

func TestContingency_LoadMalformed(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
	}{
		{"not json", "invalid json"},
		{"empty", ""},
		{"unknown type", `{"type":"SVCAN","motive":"Teste","timestamp":"2024-01-01T00:00:00Z","tpEmis":"9"}`},
		{"missing tpEmis", `{"type":"A","motive":"Teste","timestamp":"2024-01-01T00:00:00Z"}`},
		{"long tpEmis", `{"type":"A","motive":"Teste","timestamp":"","tpEmis":"66"}`},
		{"numeric tpEmis", `{"type":"A","motive":"Teste","timestamp":"","tpEmis":6}`},
		{"bad timestamp", `{"type":"A","motive":"Teste","timestamp":"yesterday","tpEmis":"6"}`},
		{"normal with type", `{"type":"A","motive":"","timestamp":"","tpEmis":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContingency(t)
			_, err := c.Activate("SP", testMotive, ModeAlternateA)
			require.NoError(t, err)
			before := c.State()

			err = c.Load(tt.snapshot)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedSnapshot)
			assert.Equal(t, before, c.State())
		})
	}
}

type recordingHook struct {
	mu          sync.Mutex
	transitions []Transition
}

func (r *recordingHook) OnTransition(t Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, t)
}

func TestContingency_TransitionHook(t *testing.T) {
	hook := &recordingHook{}
	c := newTestContingency(t, WithTransitionHook(hook))

	_, err := c.Activate("SP", testMotive, ModeAlternateA)
	require.NoError(t, err)
	_, err = c.Activate("SP", "x", ModeAlternateA)
	require.Error(t, err)
	c.Deactivate()

	require.Len(t, hook.transitions, 2)
	assert.Equal(t, TransitionActivated, hook.transitions[0].Kind)
	assert.False(t, hook.transitions[0].From.Active)
	assert.True(t, hook.transitions[0].To.Active)
	assert.Equal(t, TransitionDeactivated, hook.transitions[1].Kind)
	assert.NotEqual(t, hook.transitions[0].ID, hook.transitions[1].ID)
}

func TestNewContingency_RejectsBadOptions(t *testing.T) {
	for _, opt := range []ContingencyOption{
		WithClock(nil),
		WithTransitionHook(nil),
		WithAutomaticEmissionType("1"),
		WithAutomaticEmissionType("x"),
		WithAutomaticEmissionType("66"),
	} {
		_, err := NewContingency(opt)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestContingency_ConcurrentAccess(t *testing.T) {
	c := newTestContingency(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.Activate("SP", testMotive, ModeAlternateA)
			c.Deactivate()
		}()
		go func() {
			defer wg.Done()
			state := c.State()
			if state.Active {
				assert.Equal(t, EmissionSVCAN, state.EmissionType)
			} else {
				assert.Equal(t, EmissionNormal, state.EmissionType)
			}
		}()
	}
	wg.Wait()
	assert.False(t, c.IsActive())
}

func TestContingency_ZeroValue(t *testing.T) {
	var c Contingency

	assert.False(t, c.IsActive())
	assert.Equal(t, EmissionNormal, c.EmissionType())
	assert.Equal(t, inactiveState(), c.State())
	assert.JSONEq(t, `{"type":"","motive":"","timestamp":"","tpEmis":"1"}`, c.Snapshot())

	assert.NotPanics(t, func() { c.Deactivate() })

	_, err := c.Activate("SP", testMotive, ModeAutomatic)
	require.NoError(t, err)
	assert.Equal(t, DefaultAutomaticEmissionType, c.EmissionType())
	assert.False(t, c.State().ActivatedAt.IsZero())
}

func TestContingency_LoadTimestampWithoutOffset(t *testing.T) {
	c := newTestContingency(t)
	require.NoError(t, c.Load(`{"type":"A","motive":"SEFAZ fora do ar","timestamp":"2024-01-15T10:00:00","tpEmis":"6"}`))

	at := c.State().ActivatedAt
	assert.Equal(t, time.Local, at.Location())
	assert.Equal(t, 10, at.Hour())
	assert.Equal(t, 15, at.Day())
}
