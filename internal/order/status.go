package order

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Action string

const (
	ActionPay      Action = "pay"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPay, ActionComplete, ActionCancel:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrValidation, s)
}

// Open reports whether line mutations are still allowed.
func (s Status) Open() bool {
	return s == StatusPending
}

// Transition returns the status reached by applying the action.
// Legal moves: pending -> paid (pay), paid -> completed (complete),
// pending -> cancelled (cancel). Everything else fails.
func (s Status) Transition(a Action) (Status, error) {
	switch a {
	case ActionPay:
		if s == StatusPending {
			return StatusPaid, nil
		}
	case ActionComplete:
		if s == StatusPaid {
			return StatusCompleted, nil
		}
	case ActionCancel:
		if s == StatusPending {
			return StatusCancelled, nil
		}
	}
	return "", fmt.Errorf("%w: cannot %s an order in status %s", ErrInvalidTransition, a, s)
}
