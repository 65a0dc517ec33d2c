// Package gate maps an aggregate confidence score to a recommended action.
//
// The gate is the only decision authority in the harness: the EVALUATE
// phase computes a scalar in [0,100] and the gate answers with exactly one
// action. It holds no state and performs no I/O.
package gate

import (
	"errors"
	"fmt"
	"sort"
)

// Action is the recommended disposition for an investigation.
type Action string

const (
	// AutoExecute: confidence is high enough to apply the resolution unattended.
	AutoExecute Action = "auto_execute"
	// ExecuteWithReview: apply the resolution, notify a human for post-action review.
	ExecuteWithReview Action = "execute_with_review"
	// RequireApproval: hold the resolution until a human approves.
	RequireApproval Action = "require_approval"
	// ContinueOrEscalate: evidence is insufficient; gather more or hand off.
	ContinueOrEscalate Action = "continue_or_escalate"
)

// ErrOutOfRange is returned when a confidence value falls outside [0,100].
// It signals an upstream computation bug, not a user error.
var ErrOutOfRange = errors.New("gate: confidence out of range [0,100]")

// Band is one contiguous confidence interval mapped to an action.
// The interval is closed at Low. The highest band is also closed at High;
// every other band is open at High (the next band's Low takes over).
type Band struct {
	Low    float64 `json:"low" yaml:"low"`
	High   float64 `json:"high" yaml:"high"`
	Action Action  `json:"action" yaml:"action"`
}

// Table is an ordered set of bands covering [0,100] exactly.
type Table struct {
	Bands []Band `json:"bands" yaml:"bands"`
}

// DefaultTable returns the standard four-band table:
//
//	[95,100] auto_execute
//	[85,95)  execute_with_review
//	[70,85)  require_approval
//	[0,70)   continue_or_escalate
func DefaultTable() Table {
	return Table{Bands: []Band{
		{Low: 0, High: 70, Action: ContinueOrEscalate},
		{Low: 70, High: 85, Action: RequireApproval},
		{Low: 85, High: 95, Action: ExecuteWithReview},
		{Low: 95, High: 100, Action: AutoExecute},
	}}
}

// Validate checks that the bands are non-empty, contiguous, non-overlapping,
// and cover [0,100] exactly. Bands may be supplied in any order.
func (t Table) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("gate: table has no bands")
	}
	bands := make([]Band, len(t.Bands))
	copy(bands, t.Bands)
	sort.Slice(bands, func(i, j int) bool { return bands[i].Low < bands[j].Low })

	if bands[0].Low != 0 {
		return fmt.Errorf("gate: bands start at %v, want 0", bands[0].Low)
	}
	for i, b := range bands {
		if b.High <= b.Low {
			return fmt.Errorf("gate: band %q is empty or inverted [%v,%v)", b.Action, b.Low, b.High)
		}
		if b.Action == "" {
			return fmt.Errorf("gate: band [%v,%v) has no action", b.Low, b.High)
		}
		if i > 0 && b.Low != bands[i-1].High {
			return fmt.Errorf("gate: gap or overlap between %v and %v", bands[i-1].High, b.Low)
		}
	}
	if top := bands[len(bands)-1].High; top != 100 {
		return fmt.Errorf("gate: bands end at %v, want 100", top)
	}
	return nil
}

// Decide returns the action for the band containing confidence.
// Each band is closed at its lower bound; the top band is closed at 100.
// Values outside [0,100] return ErrOutOfRange.
func (t Table) Decide(confidence float64) (Action, error) {
	if confidence < 0 || confidence > 100 {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, confidence)
	}
	var best *Band
	for i := range t.Bands {
		b := &t.Bands[i]
		if confidence >= b.Low && (best == nil || b.Low > best.Low) {
			best = b
		}
	}
	if best == nil {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, confidence)
	}
	return best.Action, nil
}
