package engine

import (
	"os"
	"path/filepath"
	"testing"

	"gloomgrid-server/internal/domain"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archetypes.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoadArchetypesBuiltin(t *testing.T) {
	archetypes, err := LoadArchetypes("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(archetypes) == 0 {
		t.Fatal("built-in set must not be empty")
	}
	for _, a := range archetypes {
		if err := a.Validate(); err != nil {
			t.Errorf("built-in archetype %s is invalid: %v", a.ID, err)
		}
	}
}

func TestLoadArchetypesFromFile(t *testing.T) {
	path := writeYAML(t, `
archetypes:
  - id: grunt
    name: Grunt
    maxHealth: 20
    damage: 5
    sightRange: 8
    hearingRange: 4
    attackRange: 1.0
    moveSpeed: 1.5
    turnSpeed: 2.0
    radius: 0.3
    intelligence: 0.3
    aggressiveness: 0.5
    stunThreshold: 10
    attackCooldown: 1.0
    style: ranged
    tier: 1
    weight: 2
`)

	archetypes, err := LoadArchetypes(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(archetypes) != 1 {
		t.Fatalf("expected 1 archetype, got %d", len(archetypes))
	}

	a := archetypes[0]
	if a.ID != "grunt" || a.Style != domain.AttackRanged || a.Weight != 2 {
		t.Errorf("archetype parsed wrong: %+v", a)
	}
}

func TestLoadArchetypesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown style", `
archetypes:
  - id: x
    maxHealth: 10
    style: psychic
`},
		{"duplicate id", `
archetypes:
  - id: x
    maxHealth: 10
  - id: x
    maxHealth: 10
`},
		{"empty list", `archetypes: []`},
		{"invalid stats", `
archetypes:
  - id: x
    maxHealth: -5
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeYAML(t, tt.content)
			if _, err := LoadArchetypes(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadArchetypesMissingFile(t *testing.T) {
	if _, err := LoadArchetypes("/nonexistent/archetypes.yaml"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
