package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/combat-engine/pkg/dice"
	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

func TestHit_NetHitsDealStunDamage(t *testing.T) {
	attacker := newTestInfo(t, &sheet.Spec{ID: "attacker", Skills: map[string]int{"unarmed_combat": 3}})
	defender := newTestInfo(t, &sheet.Spec{ID: "defender", Attributes: map[string]int{"reaction": 2, "intuition": 2}})
	defender.c.Pos = Vec{X: 1}

	// attack 3 hits of 6, defense 1 hit of 4, resistance rolls nothing but 2s
	script := dice.NewScript(5, 6, 5, 2, 3, 4, 6, 2, 3, 4)
	out, err := Hit{Target: "defender"}.Resolve(newTestContext(attacker, script, defender))
	require.NoError(t, err)

	a := out.Attack
	require.NotNil(t, a)
	assert.False(t, a.OutOfRange)
	assert.Equal(t, 6, a.Pool)
	assert.Equal(t, 4, a.Limit)
	assert.Equal(t, 3, a.Hits)
	assert.Equal(t, 4, a.DefensePool)
	assert.Equal(t, 1, a.DefenseHits)
	assert.Equal(t, 2, a.NetHits)
	require.NotNil(t, a.Resist)
	assert.Equal(t, 5, a.Resist.DamageValue)
	assert.Equal(t, 0, a.Resist.Hits)
	assert.Equal(t, 5, a.Resist.Damage)
	assert.Equal(t, Stun, a.Resist.Type)
	assert.Equal(t, 5, defender.c.Stun())
	assert.Equal(t, 0, defender.c.Physical())
	assert.True(t, attacker.Has(AttackDone))

	msg := Hit{}.Describe(out)
	assert.Equal(t, "attack.hit.damage", msg.Key)
	assert.Equal(t, 5, msg.Args["damage"])
}

func TestHit_OutOfReach(t *testing.T) {
	attacker := newTestInfo(t, &sheet.Spec{ID: "attacker"})
	defender := newTestInfo(t, &sheet.Spec{ID: "defender"})
	defender.c.Pos = Vec{X: 1, Y: 1}

	script := dice.NewScript(6, 6, 6)
	out, err := Hit{Target: "defender"}.Resolve(newTestContext(attacker, script, defender))
	require.NoError(t, err)
	assert.True(t, out.Attack.OutOfRange)
	assert.Equal(t, 3, script.Remaining(), "nothing is rolled")
	assert.Equal(t, "attack.hit.out_of_range", Hit{}.Describe(out).Key)
	assert.False(t, attacker.Has(AttackDone))
}

func TestHit_Miss(t *testing.T) {
	attacker := newTestInfo(t, &sheet.Spec{ID: "attacker"})
	defender := newTestInfo(t, &sheet.Spec{ID: "defender"})

	// defaulted attacker rolls two dice without a hit, defender one hit
	script := dice.NewScript(2, 2, 3, 3, 4, 5)
	out, err := Hit{Target: "defender"}.Resolve(newTestContext(attacker, script, defender))
	require.NoError(t, err)
	assert.Equal(t, -1, out.Attack.NetHits)
	assert.Nil(t, out.Attack.Resist)
	assert.Equal(t, 0, defender.c.Stun())
	assert.Equal(t, "attack.hit.miss", Hit{}.Describe(out).Key)
}

func TestHit_Targets(t *testing.T) {
	attacker := newTestInfo(t, &sheet.Spec{ID: "attacker"})

	_, err := Hit{Target: "ghost"}.Resolve(newTestContext(attacker, dice.NewScript()))
	assert.ErrorIs(t, err, ErrUnknownCombatant)

	_, err = Hit{Target: "attacker"}.Resolve(newTestContext(attacker, dice.NewScript()))
	assert.True(t, IsRuleViolation(err))
}

func TestShoot_ExtremeRangeAtSprinter(t *testing.T) {
	shooter := newTestInfo(t, &sheet.Spec{
		ID:         "shooter",
		Attributes: map[string]int{"agility": 6},
		Skills:     map[string]int{"pistols": 6},
	})
	target := newTestInfo(t, &sheet.Spec{ID: "target"})
	target.c.Pos = Vec{X: 30, Y: 40}
	target.set(Sprinting)
	target.set(Running)

	script := dice.NewScript(5, 6)
	out, err := Shoot{Target: "target"}.Resolve(newTestContext(shooter, script, target))
	require.NoError(t, err)

	a := out.Attack
	assert.Equal(t, 50.0, a.Distance)
	assert.Equal(t, Extreme, a.Band)
	assert.Equal(t, -10, a.Modifier)
	assert.Equal(t, 12-10, a.Pool)
	assert.Equal(t, 5, a.Limit)
	assert.Equal(t, 2, a.Hits)
	assert.Equal(t, 4, a.DefensePool, "the running target defends at -2")
	assert.Equal(t, 2, a.NetHits)
	require.NotNil(t, a.Resist)
	assert.Equal(t, 10, a.Resist.DamageValue)
	assert.Equal(t, Stun, a.Resist.Type, "10 is below the pierced armor of 11")
	assert.Equal(t, 3+11, a.Resist.Pool)
	assert.Equal(t, 10, target.c.Stun())

	msg := Shoot{}.Describe(out)
	assert.Equal(t, "attack.shoot.damage", msg.Key)
	assert.Equal(t, "Ares Predator V", msg.Args["weapon"])
}

func TestShoot_NegativePoolRollsNothing(t *testing.T) {
	shooter := newTestInfo(t, &sheet.Spec{ID: "shooter"})
	target := newTestInfo(t, &sheet.Spec{ID: "target"})
	target.c.Pos = Vec{X: 50}
	target.set(Sprinting)

	script := dice.NewScript(6, 6, 6)
	out, err := Shoot{Target: "target"}.Resolve(newTestContext(shooter, script, target))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Attack.Pool)
	assert.Equal(t, 0, out.Attack.Hits)
	assert.Equal(t, dice.GlitchNone, out.Attack.Glitch)
}

func TestShoot_OutOfRange(t *testing.T) {
	shooter := newTestInfo(t, &sheet.Spec{ID: "shooter"})
	target := newTestInfo(t, &sheet.Spec{ID: "target"})
	target.c.Pos = Vec{X: 61}

	script := dice.NewScript(6)
	out, err := Shoot{Target: "target"}.Resolve(newTestContext(shooter, script, target))
	require.NoError(t, err)
	assert.True(t, out.Attack.OutOfRange)
	assert.Equal(t, OutOfRange, out.Attack.Band)
	assert.Equal(t, 1, script.Remaining())
}

func TestShoot_Modifier(t *testing.T) {
	target := newTestInfo(t, &sheet.Spec{ID: "target"})
	s := Shoot{Target: "target"}
	tests := []struct {
		distance float64
		flag     Flag
		want     int
	}{
		{distance: 5.5, want: 0},
		{distance: 5.6, want: -1},
		{distance: 20.5, want: -1},
		{distance: 40.5, want: -3},
		{distance: 60.5, want: -6},
		{distance: 3, flag: Running, want: -2},
		{distance: 30, flag: Sprinting, want: -7},
	}
	for _, tt := range tests {
		target.flags = 0
		if tt.flag != 0 {
			target.set(tt.flag)
		}
		assert.Equal(t, tt.want, s.Modifier(target, tt.distance), "distance %.1f", tt.distance)
	}
}

func TestWeaponAmmunition(t *testing.T) {
	w := HeavyPistol("")
	assert.Equal(t, "heavy pistol", w.Name)
	assert.Equal(t, 8, w.DamageValue())
	assert.Equal(t, Physical, w.DamageType())
	assert.Equal(t, -1, w.ArmorPiercing())

	w.Ammunition = Ammunition{Name: "gel rounds", DamageValue: 1, ArmorPiercing: 1, Type: Stun}
	assert.Equal(t, 9, w.DamageValue())
	assert.Equal(t, Stun, w.DamageType())
	assert.Equal(t, 0, w.ArmorPiercing())
}

func TestMove(t *testing.T) {
	spec := &sheet.Spec{ID: "runner", Attributes: map[string]int{"agility": 4}}
	tests := []struct {
		name          string
		to            Vec
		moved         float64
		flags         []Flag
		wantPos       Vec
		wantDistance  float64
		wantToMax     bool
		wantAtMax     bool
		wantRunning   bool
		wantFreeSpent bool
	}{
		{name: "walk", to: Vec{X: 3, Y: 4}, wantPos: Vec{X: 3, Y: 4}, wantDistance: 5},
		{name: "zero distance", to: Vec{}, moved: 20, wantPos: Vec{}},
		{name: "start running", to: Vec{X: 12}, wantPos: Vec{X: 12}, wantDistance: 12, wantRunning: true, wantFreeSpent: true},
		{name: "run to maximum", to: Vec{X: 30, Y: 40}, wantPos: Vec{X: 9.6, Y: 12.8}, wantDistance: 16, wantToMax: true, wantRunning: true, wantFreeSpent: true},
		{name: "no free action to start running", to: Vec{X: 20}, moved: 3, flags: []Flag{FreeActionDone}, wantPos: Vec{X: 5}, wantDistance: 5, wantToMax: true, wantFreeSpent: true},
		{name: "already at maximum", to: Vec{X: 5}, moved: 16, flags: []Flag{Running}, wantPos: Vec{}, wantAtMax: true, wantRunning: true},
		{name: "already running", to: Vec{X: 10}, moved: 8, flags: []Flag{Running}, wantPos: Vec{X: 8}, wantDistance: 8, wantToMax: true, wantRunning: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := newTestInfo(t, spec)
			for _, f := range tt.flags {
				info.set(f)
			}
			ctx := newTestContext(info, dice.NewScript())
			ctx.Moved = tt.moved

			out, err := Move{To: tt.to}.Resolve(ctx)
			require.NoError(t, err)

			m := out.Move
			assert.InDelta(t, tt.wantPos.X, m.To.X, 1e-9)
			assert.InDelta(t, tt.wantPos.Y, m.To.Y, 1e-9)
			assert.Equal(t, m.To, info.c.Pos)
			assert.InDelta(t, tt.wantDistance, m.Distance, 1e-9)
			assert.InDelta(t, tt.moved+tt.wantDistance, ctx.Moved, 1e-9)
			assert.Equal(t, tt.wantToMax, m.ToMaximum)
			assert.Equal(t, tt.wantAtMax, m.AtMaximum)
			assert.Equal(t, tt.wantRunning, info.Has(Running))
			assert.Equal(t, tt.wantFreeSpent, info.Has(FreeActionDone))
		})
	}
}

func TestMove_Describe(t *testing.T) {
	info := newTestInfo(t, &sheet.Spec{ID: "runner"})
	out, err := Move{To: Vec{X: 100}}.Resolve(newTestContext(info, dice.NewScript()))
	require.NoError(t, err)
	msg := Move{}.Describe(out)
	assert.Equal(t, "move.to_maximum", msg.Key)
	assert.Equal(t, "run", msg.Args["gait"])
}

func TestSprint(t *testing.T) {
	info := newTestInfo(t, &sheet.Spec{
		ID:         "sprinter",
		Attributes: map[string]int{"strength": 4, "sprint_increase": 2},
		Skills:     map[string]int{"running": 3},
	})
	assert.Equal(t, 2, MaxSprintTests(info.c.Sheet))

	// pool strength 4 + running 3 - 2 running + 2
	script := dice.NewScript(5, 5, 6, 2, 2, 2, 2)
	ctx := newTestContext(info, script)
	out, err := Sprint{}.Resolve(ctx)
	require.NoError(t, err)

	s := out.Sprint
	require.NotNil(t, s)
	assert.Equal(t, 7, s.Pool)
	assert.Equal(t, info.c.Sheet.LimitPhysical(), s.Limit)
	assert.Equal(t, 3, s.Hits)
	assert.Equal(t, 6.0, s.Extra)
	assert.Nil(t, s.Fatigue)
	assert.True(t, info.Has(Sprinting))
	assert.True(t, info.Has(Running))
	assert.Equal(t, 3, info.SprintHits())
	assert.Equal(t, 3.0*4+6, info.MovementMax())

	_, err = Sprint{}.Resolve(ctx)
	require.NoError(t, err)

	_, err = Sprint{}.Resolve(ctx)
	assert.True(t, IsRuleViolation(err), "only two sprint tests with running 3")
	assert.Equal(t, 2, info.turnSprints)
	assert.Equal(t, 2, info.consecutiveSprints, "a rejected sprint changes nothing")
}

func TestSprint_ConsecutiveFatigue(t *testing.T) {
	info := newTestInfo(t, &sheet.Spec{ID: "sprinter"})
	ctx := newTestContext(info, dice.NewScript())

	_, err := Sprint{}.Resolve(ctx)
	require.NoError(t, err)
	info.EndCombatTurn()
	info.NewCombatTurn(ctx.Dice)

	out, err := Sprint{}.Resolve(ctx)
	require.NoError(t, err)
	require.NotNil(t, out.Sprint.Fatigue)
	assert.Equal(t, 2, out.Sprint.Fatigue.DamageValue)
	assert.Equal(t, 6, out.Sprint.Fatigue.Pool)
	assert.Equal(t, 2, info.c.Stun())
	assert.Equal(t, "sprint.fatigue", Sprint{}.Describe(out).Key)
}

func TestFreeActions(t *testing.T) {
	info := newTestInfo(t, &sheet.Spec{ID: "mage"})
	info.c.Sustain("armor", -1)
	info.NewCombatTurn(dice.New(dice.NewScript(6)))
	ctx := newTestContext(info, dice.NewScript())

	out, err := DropEffect{Effect: "armor"}.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "armor", out.Effect)
	assert.Empty(t, info.c.Sustained())

	_, err = Defensive{}.Resolve(ctx)
	require.NoError(t, err)
	assert.True(t, info.Has(FullDefense))
	_, err = Defensive{}.Resolve(ctx)
	assert.True(t, IsRuleViolation(err))
}
