package game

import (
	"errors"
	"fmt"
)

// Reason classifies why an action was rejected.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonInsufficientPA
	ReasonUnreachable
	ReasonUnknownNode
	ReasonBadMulligan
	ReasonIncompatible
	ReasonNotInHand
	ReasonBattleOver
	ReasonBattleInProgress
	ReasonNoBattle
)

func (r Reason) String() string {
	switch r {
	case ReasonInsufficientPA:
		return "insufficient_pa"
	case ReasonUnreachable:
		return "unreachable"
	case ReasonUnknownNode:
		return "unknown_node"
	case ReasonBadMulligan:
		return "bad_mulligan"
	case ReasonIncompatible:
		return "incompatible"
	case ReasonNotInHand:
		return "not_in_hand"
	case ReasonBattleOver:
		return "battle_over"
	case ReasonBattleInProgress:
		return "battle_in_progress"
	case ReasonNoBattle:
		return "no_battle"
	default:
		return "unknown"
	}
}

// InvalidAction is a recoverable rejection. The rejected action left no trace
// on battle or campaign state.
type InvalidAction struct {
	Reason Reason
	Detail string
}

func (e *InvalidAction) Error() string {
	if e.Detail == "" {
		return "invalid action: " + e.Reason.String()
	}
	return fmt.Sprintf("invalid action: %s: %s", e.Reason, e.Detail)
}

// Reject builds an InvalidAction error.
func Reject(reason Reason, format string, args ...any) error {
	return &InvalidAction{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsInvalidAction reports whether err is a rejection and returns its reason.
func IsInvalidAction(err error) (Reason, bool) {
	var ia *InvalidAction
	if errors.As(err, &ia) {
		return ia.Reason, true
	}
	return ReasonUnknown, false
}

// IntegrityViolation is the panic value raised when cards are created or lost.
type IntegrityViolation string

func (e IntegrityViolation) Error() string { return "integrity violation: " + string(e) }
