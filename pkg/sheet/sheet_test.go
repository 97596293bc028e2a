package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSheetFromSpec_Defaults(t *testing.T) {
	s, err := NewSheetFromSpec(&Spec{ID: "runner"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Attribute(Body))
	assert.Equal(t, 1, s.Attribute(Edge))
	assert.Equal(t, 6, s.Attribute(Essence))
	assert.Equal(t, 0, s.Attribute(Magic))
	assert.Equal(t, 2, s.Attribute(WalkRate))
	assert.Equal(t, 4, s.Attribute(RunRate))
	assert.Equal(t, 1, s.Attribute(SprintIncrease))
	assert.Equal(t, 12, s.Armor())
	assert.Equal(t, 1, s.InitiativeDice())
	assert.Equal(t, "runner", s.Name())

	require.NotNil(t, s.Actor)
	assert.Equal(t, 10, s.Actor.MaxHP(), "actor HP tracks the physical monitor")
	assert.Equal(t, 12, s.Actor.AC(), "actor AC tracks armor")
	body, ok := s.Actor.Attribute("body")
	assert.True(t, ok)
	assert.Equal(t, 3, body)
}

func TestNewSheetFromSpec_Overrides(t *testing.T) {
	armor := 9
	s, err := NewSheetFromSpec(&Spec{
		ID:              "street_sam",
		Name:            "Street Sam",
		Attributes:      map[string]int{"Body": 5, "walk rate": 3, "willpower": 4},
		Skills:          map[string]int{"Pistols": 6},
		Armor:           &armor,
		InitiativeDice:  9,
		Groups:          []string{"runners"},
		CombatModifiers: map[string]int{"pistols": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, s.Attribute(Body))
	assert.Equal(t, 3, s.Attribute(WalkRate))
	assert.Equal(t, 6, s.Rating(Pistols))
	assert.Equal(t, 9, s.Armor())
	assert.Equal(t, 5, s.InitiativeDice(), "initiative dice are clamped to 5")
	assert.Equal(t, []string{"runners"}, s.Groups())
	assert.Equal(t, 11, s.PhysicalMax())
	assert.Equal(t, 10, s.StunMax())
	assert.Equal(t, map[string]int{"pistols": 2}, s.CombatModifiers())
}

func TestNewSheetFromSpec_UnknownNames(t *testing.T) {
	tests := []struct {
		name    string
		spec    *Spec
		wantErr error
	}{
		{name: "nil spec", spec: nil},
		{name: "missing id", spec: &Spec{}},
		{name: "unknown attribute", spec: &Spec{ID: "x", Attributes: map[string]int{"luck": 3}}, wantErr: ErrUnknownAttribute},
		{name: "unknown skill", spec: &Spec{ID: "x", Skills: map[string]int{"basket_weaving": 3}}, wantErr: ErrUnknownSkill},
		{name: "unknown specialization skill", spec: &Spec{ID: "x", Specializations: map[string][]string{"juggling": {"clubs"}}}, wantErr: ErrUnknownSkill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSheetFromSpec(tt.spec)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var lookup *LookupError
				assert.True(t, errors.As(err, &lookup))
			}
		})
	}
}

func TestDicePool(t *testing.T) {
	s, err := NewSheetFromSpec(&Spec{
		ID:              "adept",
		Attributes:      map[string]int{"agility": 5, "strength": 4, "magic": 3},
		Skills:          map[string]int{"unarmed_combat": 4, "blades": 2},
		SkillGroups:     map[string]int{"Athletics": 2},
		Specializations: map[string][]string{"unarmed_combat": {"Martial Arts"}},
	})
	require.NoError(t, err)

	tests := []struct {
		name           string
		skill          Skill
		specialization string
		want           int
		wantErr        error
	}{
		{name: "trained", skill: UnarmedCombat, want: 9},
		{name: "specialized", skill: UnarmedCombat, specialization: "martial arts", want: 11},
		{name: "other specialization", skill: UnarmedCombat, specialization: "wrestling", want: 9},
		{name: "group replaces rating", skill: Running, want: 6},
		{name: "defaulting", skill: Pistols, want: 4},
		{name: "cannot default", skill: Spellcasting, wantErr: ErrCannotDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.DicePool(tt.skill, tt.specialization)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = s.DicePoolByName("underwater basket weaving", "")
	assert.ErrorIs(t, err, ErrUnknownSkill)
	got, err := s.DicePoolByName("Unarmed Combat", "")
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}

func TestLimits(t *testing.T) {
	s, err := NewSheetFromSpec(&Spec{ID: "troll", Attributes: map[string]int{
		"strength": 7, "body": 8, "reaction": 3,
		"logic": 2, "intuition": 3, "willpower": 4,
		"charisma": 2, "essence": 6,
	}})
	require.NoError(t, err)

	assert.Equal(t, 9, s.LimitPhysical())
	assert.Equal(t, 4, s.LimitMental())
	assert.Equal(t, 5, s.LimitSocial())
}

func TestParseAttribute(t *testing.T) {
	a, err := ParseAttribute("  Sprint Increase ")
	require.NoError(t, err)
	assert.Equal(t, SprintIncrease, a)

	_, err = ParseAttribute("luck")
	assert.ErrorIs(t, err, ErrUnknownAttribute)
	assert.Contains(t, err.Error(), "luck")
}

func TestSkillGroups(t *testing.T) {
	groups := SkillGroups()
	assert.Contains(t, groups, "firearms")
	assert.Contains(t, groups, "athletics")
	assert.NotContains(t, groups, "")
}

func TestLoadSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ganger.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"ignored","name":"Ganger","skills":{"clubs":3}}`), 0644))

	spec, err := LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "ganger", spec.ID, "file name overrides the id")
	assert.Equal(t, "Ganger", spec.Name)

	_, err = LoadSpec(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{ nope }"), 0644))
	_, err = LoadSpec(bad)
	assert.Error(t, err)
}
