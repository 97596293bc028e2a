package combat

// Admit reports whether next may join a queue already holding queued. A queue
// holds one complex action or up to two simple actions, never both, and at
// most one free action. Moves are limited by distance, not by count.
func Admit(queued []Action, next Action) bool {
	var complexActions, simpleActions, freeActions int
	for _, a := range queued {
		switch a.Kind() {
		case ComplexAction:
			complexActions++
		case SimpleAction:
			simpleActions++
		case FreeAction:
			freeActions++
		}
	}
	k := next.Kind()
	whole := k == ComplexAction || k == SimpleAction
	if (complexActions > 0 || simpleActions >= 2) && whole {
		return false
	}
	if simpleActions == 1 && k == ComplexAction {
		return false
	}
	if freeActions > 0 && k == FreeAction {
		return false
	}
	return true
}
