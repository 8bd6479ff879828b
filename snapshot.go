package nfecore

import (
	"encoding/json"
	"fmt"
	"time"
)

// localDateTimeLayout is ISO-8601 without an offset; such timestamps are
// read in the local zone.
const localDateTimeLayout = "2006-01-02T15:04:05"

// snapshot is the JSON form of a ContingencyState.
type snapshot struct {
	Type         string `json:"type"`
	Motive       string `json:"motive"`
	Timestamp    string `json:"timestamp"`
	EmissionType string `json:"tpEmis"`
}

func encodeSnapshot(s ContingencyState) string {
	snap := snapshot{
		Type:         s.Mode,
		Motive:       s.Motive,
		EmissionType: s.EmissionType,
	}
	if s.Active {
		snap.Timestamp = s.ActivatedAt.Format(time.RFC3339)
	}
	if snap.EmissionType == "" {
		snap.EmissionType = EmissionNormal
	}

	// Only strings are marshalled, this cannot fail.
	data, _ := json.Marshal(snap)
	return string(data)
}

func decodeSnapshot(raw string) (ContingencyState, error) {
	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return ContingencyState{}, NewMalformedSnapshotError(err)
	}

	if !validMode(snap.Type) {
		return ContingencyState{}, NewMalformedSnapshotError(fmt.Errorf("unknown type %q", snap.Type))
	}
	if len(snap.EmissionType) != EmissionTypeWidth || !isDigits(snap.EmissionType) {
		return ContingencyState{}, NewMalformedSnapshotError(fmt.Errorf("tpEmis must be a single digit, got %q", snap.EmissionType))
	}

	var activatedAt time.Time
	if snap.Timestamp != "" {
		t, err := parseSnapshotTime(snap.Timestamp)
		if err != nil {
			return ContingencyState{}, NewMalformedSnapshotError(fmt.Errorf("timestamp: %w", err))
		}
		activatedAt = t
	}

	if snap.EmissionType == EmissionNormal {
		if snap.Type != ModeAutomatic || snap.Motive != "" {
			return ContingencyState{}, NewMalformedSnapshotError(fmt.Errorf("tpEmis %s cannot carry a contingency type or motive", EmissionNormal))
		}
		return inactiveState(), nil
	}

	return ContingencyState{
		Active:       true,
		Mode:         snap.Type,
		Motive:       snap.Motive,
		ActivatedAt:  activatedAt,
		EmissionType: snap.EmissionType,
	}, nil
}

func parseSnapshotTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	if local, lerr := time.ParseInLocation(localDateTimeLayout, value, time.Local); lerr == nil {
		return local, nil
	}
	return time.Time{}, err
}
