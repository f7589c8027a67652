package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gloomgrid-server/internal/domain"
)

// archetypeFile - корневая структура YAML-файла с архетипами.
type archetypeFile struct {
	Archetypes []archetypeSpec `yaml:"archetypes"`
}

// archetypeSpec - сырой архетип из YAML до валидации.
type archetypeSpec struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	MaxHealth      float64 `yaml:"maxHealth"`
	Damage         float64 `yaml:"damage"`
	SightRange     float64 `yaml:"sightRange"`
	HearingRange   float64 `yaml:"hearingRange"`
	AttackRange    float64 `yaml:"attackRange"`
	MoveSpeed      float64 `yaml:"moveSpeed"`
	TurnSpeed      float64 `yaml:"turnSpeed"`
	Radius         float64 `yaml:"radius"`
	Intelligence   float64 `yaml:"intelligence"`
	Aggressiveness float64 `yaml:"aggressiveness"`
	StunThreshold  float64 `yaml:"stunThreshold"`
	AttackCooldown float64 `yaml:"attackCooldown"`
	Style          string  `yaml:"style"` // "melee" или "ranged"
	Tier           float64 `yaml:"tier"`
	Weight         int     `yaml:"weight"`
}

// LoadArchetypes читает набор архетипов из YAML-файла.
// Пустой путь возвращает встроенный набор.
func LoadArchetypes(path string) ([]domain.Archetype, error) {
	if path == "" {
		return domain.DefaultArchetypes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}

	var file archetypeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	if len(file.Archetypes) == 0 {
		return nil, fmt.Errorf("archetypes file %s is empty", path)
	}

	out := make([]domain.Archetype, 0, len(file.Archetypes))
	seen := make(map[string]bool, len(file.Archetypes))
	for i, spec := range file.Archetypes {
		a, err := spec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("archetype #%d (%s): %w", i, spec.ID, err)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate archetype id %q", a.ID)
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}

func (s archetypeSpec) toDomain() (domain.Archetype, error) {
	var style domain.AttackStyle
	switch s.Style {
	case "melee", "":
		style = domain.AttackMelee
	case "ranged":
		style = domain.AttackRanged
	default:
		return domain.Archetype{}, fmt.Errorf("unknown attack style %q", s.Style)
	}

	a := domain.Archetype{
		ID:             s.ID,
		Name:           s.Name,
		MaxHealth:      s.MaxHealth,
		Damage:         s.Damage,
		SightRange:     s.SightRange,
		HearingRange:   s.HearingRange,
		AttackRange:    s.AttackRange,
		MoveSpeed:      s.MoveSpeed,
		TurnSpeed:      s.TurnSpeed,
		Radius:         s.Radius,
		Intelligence:   s.Intelligence,
		Aggressiveness: s.Aggressiveness,
		StunThreshold:  s.StunThreshold,
		AttackCooldown: s.AttackCooldown,
		Style:          style,
		Tier:           s.Tier,
		Weight:         s.Weight,
	}
	if a.Weight <= 0 {
		a.Weight = 1
	}
	if err := a.Validate(); err != nil {
		return domain.Archetype{}, err
	}
	return a, nil
}
