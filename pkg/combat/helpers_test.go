package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

func newTestCombatant(t *testing.T, spec *sheet.Spec) *Combatant {
	t.Helper()
	s, err := sheet.NewSheetFromSpec(spec)
	require.NoError(t, err)
	return NewCombatant(s)
}

func newTestInfo(t *testing.T, spec *sheet.Spec) *Info {
	t.Helper()
	return NewInfo(newTestCombatant(t, spec))
}

// newTestContext builds a resolution context for actor against targets.
func newTestContext(actor *Info, script *dice.Script, targets ...*Info) *Context {
	ctx := &Context{
		Session: "test",
		Dice:    dice.New(script),
		Actor:   actor,
		Targets: map[string]*Info{actor.c.ID: actor},
		Sink:    &RecordingSink{},
	}
	for _, t := range targets {
		ctx.Targets[t.c.ID] = t
	}
	return ctx
}

func armor(v int) *int { return &v }
