package robot

import (
	"fmt"
	"time"
)

// CommandResult is the per-target outcome of a dispatch.
//
// Status carries the operator-facing string contract: prefixes are stable
// ("SUCCESS:" / "ERROR:") so downstream tooling can classify results without
// parsing the free text after the colon.
type CommandResult struct {
	TargetID int    `json:"target_id"`
	OK       bool   `json:"ok"`
	Status   string `json:"status"`
}

// StatusNotConnected is the status reported when no broker connection exists.
// It is the same for every target because nothing was attempted.
const StatusNotConnected = "ERROR:MQTT not connected"

// StatusSuccess builds the status string for an acknowledged command.
func StatusSuccess(action Action) string {
	return fmt.Sprintf("SUCCESS:%s command executed", action)
}

// StatusPublishFailed builds the status string for a failed publish.
func StatusPublishFailed(action Action) string {
	return fmt.Sprintf("ERROR:%s command failed", action)
}

// StatusInvalidAction builds the status string for an out-of-vocabulary action.
func StatusInvalidAction(action string) string {
	return fmt.Sprintf("ERROR:invalid action %s", action)
}

// NormalizeTargets converts a caller-supplied target value into a slice of
// positive robot identifiers.
//
// Accepted shapes, matching what JSON decoding and direct Go callers produce:
//   - int, int64: a single target
//   - float64: a single target, must be a whole positive number
//   - []int: multiple targets
//   - []any: multiple targets, each element an int/int64/whole float64
//
// Duplicates are preserved: each occurrence dispatches its own publish.
// A nil value, a fractional or non-positive number, or any other type
// returns ErrInvalidTarget.
func NormalizeTargets(v any) ([]int, error) {
	switch t := v.(type) {
	case int:
		id, err := validTargetID(float64(t))
		if err != nil {
			return nil, err
		}
		return []int{id}, nil
	case int64:
		id, err := validTargetID(float64(t))
		if err != nil {
			return nil, err
		}
		return []int{id}, nil
	case float64:
		id, err := validTargetID(t)
		if err != nil {
			return nil, err
		}
		return []int{id}, nil
	case []int:
		out := make([]int, 0, len(t))
		for _, n := range t {
			id, err := validTargetID(float64(n))
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
		return out, nil
	case []any:
		out := make([]int, 0, len(t))
		for _, e := range t {
			var f float64
			switch n := e.(type) {
			case int:
				f = float64(n)
			case int64:
				f = float64(n)
			case float64:
				f = n
			default:
				return nil, fmt.Errorf("%w: unsupported element type %T", ErrInvalidTarget, e)
			}
			id, err := validTargetID(f)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("%w: missing target", ErrInvalidTarget)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidTarget, v)
	}
}

// validTargetID checks that f is a whole positive number and returns it as int.
func validTargetID(f float64) (int, error) {
	id := int(f)
	if float64(id) != f {
		return 0, fmt.Errorf("%w: fractional identifier %v", ErrInvalidTarget, f)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: identifier %d must be positive", ErrInvalidTarget, id)
	}
	return id, nil
}

// Robot is a metadata record for a known robot.
//
// The registry is informational: dispatch addresses any positive identifier
// whether or not a record exists, so operators can command robots that were
// never enrolled.
type Robot struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the record's structural constraints.
func (r *Robot) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidRobot)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRobot)
	}
	return nil
}
