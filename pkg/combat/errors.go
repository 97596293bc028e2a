package combat

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCombatant = errors.New("unknown combatant")
	ErrSessionStopped   = errors.New("combat session stopped")
	ErrCommitted        = errors.New("actions already committed")
	ErrUnknownEffect    = errors.New("unknown sustained effect")
)

// RuleViolation reports an attempt to break a game rule. The operation that
// returns it has not changed any state.
type RuleViolation struct {
	Rule string
	Err  error
}

func (e *RuleViolation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rule violation (%s): %v", e.Rule, e.Err)
	}
	return fmt.Sprintf("rule violation: %s", e.Rule)
}

func (e *RuleViolation) Unwrap() error {
	return e.Err
}

func violation(rule string) error {
	return &RuleViolation{Rule: rule}
}

// IsRuleViolation reports whether err is or wraps a *RuleViolation.
func IsRuleViolation(err error) bool {
	var rv *RuleViolation
	return errors.As(err, &rv)
}
