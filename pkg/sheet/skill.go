package sheet

// Skill is one of the skills of the skill table.
type Skill int

const (
	Archery Skill = iota
	Automatics
	Blades
	Clubs
	HeavyWeapons
	Longarms
	Pistols
	ThrowingWeapons
	UnarmedCombat
	Gymnastics
	Perception
	Running
	Sneaking
	Survival
	Tracking
	Assensing
	AstralCombat
	Banishing
	Binding
	Counterspelling
	Spellcasting
	Summoning
	Compiling
	Decompiling
	Registering
	Computer
	Cybercombat
	Demolitions
	ElectronicWarfare
	FirstAid
	Hacking
	Hardware
	Medicine

	numSkills
)

// SkillInfo is the static rule data of a skill.
type SkillInfo struct {
	Name        string
	Attribute   Attribute
	Defaultable bool
	Group       string
}

var skillTable = [numSkills]SkillInfo{
	Archery:           {"archery", Agility, true, ""},
	Automatics:        {"automatics", Agility, true, "firearms"},
	Blades:            {"blades", Agility, true, "close_combat"},
	Clubs:             {"clubs", Agility, true, "close_combat"},
	HeavyWeapons:      {"heavy_weapons", Agility, true, ""},
	Longarms:          {"longarms", Agility, true, "firearms"},
	Pistols:           {"pistols", Agility, true, "firearms"},
	ThrowingWeapons:   {"throwing_weapons", Agility, true, ""},
	UnarmedCombat:     {"unarmed_combat", Agility, true, "close_combat"},
	Gymnastics:        {"gymnastics", Agility, true, "athletics"},
	Perception:        {"perception", Intuition, true, ""},
	Running:           {"running", Strength, true, "athletics"},
	Sneaking:          {"sneaking", Agility, true, "stealth"},
	Survival:          {"survival", Willpower, true, "outdoors"},
	Tracking:          {"tracking", Intuition, true, "outdoors"},
	Assensing:         {"assensing", Intuition, false, ""},
	AstralCombat:      {"astral_combat", Willpower, false, ""},
	Banishing:         {"banishing", Magic, false, "conjuring"},
	Binding:           {"binding", Magic, false, "conjuring"},
	Counterspelling:   {"counterspelling", Magic, false, "sorcery"},
	Spellcasting:      {"spellcasting", Magic, false, "sorcery"},
	Summoning:         {"summoning", Magic, false, "conjuring"},
	Compiling:         {"compiling", Resonance, false, "tasking"},
	Decompiling:       {"decompiling", Resonance, false, "tasking"},
	Registering:       {"registering", Resonance, false, "tasking"},
	Computer:          {"computer", Logic, true, "electronics"},
	Cybercombat:       {"cybercombat", Logic, true, "cracking"},
	Demolitions:       {"demolitions", Logic, true, ""},
	ElectronicWarfare: {"electronic_warfare", Logic, false, "cracking"},
	FirstAid:          {"first_aid", Logic, true, "biotech"},
	Hacking:           {"hacking", Logic, true, "cracking"},
	Hardware:          {"hardware", Logic, false, "electronics"},
	Medicine:          {"medicine", Logic, false, "biotech"},
}

func (s Skill) String() string {
	if s < 0 || s >= numSkills {
		return "unknown"
	}
	return skillTable[s].Name
}

// Info returns the rule data of the skill.
func (s Skill) Info() SkillInfo {
	return skillTable[s]
}

// ParseSkill maps a name such as "Unarmed Combat" to its Skill.
func ParseSkill(name string) (Skill, error) {
	key := normalize(name)
	for i, info := range skillTable {
		if info.Name == key {
			return Skill(i), nil
		}
	}
	return 0, &LookupError{Name: name, Err: ErrUnknownSkill}
}

// SkillGroups lists the distinct skill group names of the table.
func SkillGroups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, info := range skillTable {
		if info.Group == "" || seen[info.Group] {
			continue
		}
		seen[info.Group] = true
		groups = append(groups, info.Group)
	}
	return groups
}

// Skills lists every skill in table order.
func Skills() []Skill {
	out := make([]Skill, numSkills)
	for i := range out {
		out[i] = Skill(i)
	}
	return out
}
