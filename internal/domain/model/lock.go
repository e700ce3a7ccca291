package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LockState is the tri-state lock flag of a talent. Talents that have no
// locked/unlocked variant carry LockNotApplicable.
type LockState int

const (
	LockNotApplicable LockState = iota
	Locked
	Unlocked
)

// Lockable reports whether the talent exists in a locked/unlocked variant.
func (l LockState) Lockable() bool {
	return l != LockNotApplicable
}

// Word returns "locked" or "unlocked"; empty for LockNotApplicable.
func (l LockState) Word() string {
	switch l {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return ""
	}
}

func (l LockState) String() string {
	if w := l.Word(); w != "" {
		return w
	}
	return "n/a"
}

// UnmarshalJSON decodes the dataset encoding: null, false or true.
func (l *LockState) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*l = LockNotApplicable
	case "false":
		*l = Locked
	case "true":
		*l = Unlocked
	default:
		return fmt.Errorf("lock state must be true, false or null, got %s", data)
	}
	return nil
}

// MarshalJSON encodes back to null, false or true.
func (l LockState) MarshalJSON() ([]byte, error) {
	switch l {
	case Locked:
		return json.Marshal(false)
	case Unlocked:
		return json.Marshal(true)
	default:
		return []byte("null"), nil
	}
}
