package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/combat-engine/pkg/sheet"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <sheet.json> [sheet.json...]\n", os.Args[0])
		os.Exit(1)
	}

	validator := &SheetValidator{}
	failed := false
	for _, filename := range os.Args[1:] {
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("Sheet files are valid!")
}

type SheetValidator struct {
	errors []string
}

func (v *SheetValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("sheet file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("sheet filename '%s' must be lowercase snake_case (e.g., street_samurai.json, not Street-Samurai.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var spec sheet.Spec
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}
	// The runtime takes the id from the file name.
	if spec.ID != "" && spec.ID != nameWithoutExt {
		v.addError(fmt.Sprintf("id %q does not match file name %q", spec.ID, nameWithoutExt))
	}
	spec.ID = nameWithoutExt

	v.validateSpec(&spec)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *SheetValidator) validateSpec(spec *sheet.Spec) {
	if _, err := sheet.NewSheetFromSpec(spec); err != nil {
		v.addError(err.Error())
	}

	for name, value := range spec.Attributes {
		if value < 0 {
			v.addError(fmt.Sprintf("attribute %s must not be negative, got %d", name, value))
		}
	}

	for name, rating := range spec.Skills {
		if rating < 0 {
			v.addError(fmt.Sprintf("skill %s must not be negative, got %d", name, rating))
		}
	}

	known := make(map[string]bool)
	for _, g := range sheet.SkillGroups() {
		known[g] = true
	}
	for group, rating := range spec.SkillGroups {
		if !known[strings.ToLower(strings.ReplaceAll(group, " ", "_"))] {
			v.addError(fmt.Sprintf("unknown skill group: %s", group))
		}
		if rating < 0 {
			v.addError(fmt.Sprintf("skill group %s must not be negative, got %d", group, rating))
		}
	}

	// A specialization only counts on a trained skill.
	for name, specs := range spec.Specializations {
		sk, err := sheet.ParseSkill(name)
		if err != nil {
			continue
		}
		trained := false
		for skillName, rating := range spec.Skills {
			if other, err := sheet.ParseSkill(skillName); err == nil && other == sk && rating > 0 {
				trained = true
			}
		}
		if !trained {
			v.addError(fmt.Sprintf("specializations %v on untrained skill %s", specs, name))
		}
	}

	if spec.InitiativeDice < 0 || spec.InitiativeDice > 5 {
		v.addError(fmt.Sprintf("initiative_dice must be between 1 and 5, got %d", spec.InitiativeDice))
	}

	if len(spec.Groups) == 0 {
		v.addError("sheet must belong to at least one group")
	}
	for _, g := range spec.Groups {
		v.validateIDFormat("group", g)
	}
}

func (v *SheetValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		v.addError(fmt.Sprintf("%s cannot be empty", fieldName))
		return
	}
	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' must be lowercase snake_case", fieldName, id))
	}
}

func (v *SheetValidator) addError(msg string) {
	v.errors = append(v.errors, msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
