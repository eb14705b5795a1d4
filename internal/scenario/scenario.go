// Package scenario loads and validates run configuration: agent cohorts,
// endowments, and preference parameters. All configuration errors surface
// here, before the engine consumes a single agent.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/exchange-world/internal/agents"
	"github.com/talgya/exchange-world/internal/preference"
)

// Scenario describes one complete simulation run.
type Scenario struct {
	Name   string  `yaml:"name"`
	Seed   int64   `yaml:"seed"`
	Ticks  uint64  `yaml:"ticks"`
	Spread float64 `yaml:"spread"` // Half-spread fraction applied around each agent's MRS.

	Cohorts []Cohort `yaml:"cohorts"`

	// Field optionally replaces the cohorts' flat endowments with a
	// noise-generated endowment landscape.
	Field *EndowmentField `yaml:"field,omitempty"`
}

// Cohort is a group of agents sharing a preference configuration and a base
// endowment.
type Cohort struct {
	Name       string            `yaml:"name"`
	Count      int               `yaml:"count"`
	Endowment  Endowment         `yaml:"endowment"`
	Preference preference.Config `yaml:"preference"`
}

// Endowment is an initial inventory pair.
type Endowment struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

// Load reads a scenario from a YAML file and validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Name == "" {
		s.Name = "run"
	}
	if s.Seed == 0 {
		s.Seed = 42
	}
	if s.Ticks == 0 {
		s.Ticks = 500
	}
	if s.Spread == 0 {
		s.Spread = 0.05
	}
}

// Validate checks every cohort's preference configuration by constructing it
// through the factory, and enforces the cross-field invariant that initial
// inventory for Stone-Geary cohorts lies strictly above subsistence.
func (s *Scenario) Validate() error {
	if len(s.Cohorts) == 0 {
		return fmt.Errorf("at least one cohort is required")
	}
	if s.Spread < 0 || s.Spread >= 1 {
		return fmt.Errorf("spread must be in [0, 1), got %g", s.Spread)
	}
	if s.Field != nil {
		if err := s.Field.validate(); err != nil {
			return err
		}
	}

	for _, c := range s.Cohorts {
		if c.Count <= 0 {
			return fmt.Errorf("cohort %q: count must be positive", c.Name)
		}
		if c.Endowment.A < 0 || c.Endowment.B < 0 {
			return fmt.Errorf("cohort %q: endowment must be non-negative", c.Name)
		}

		fn, err := preference.New(c.Preference)
		if err != nil {
			return fmt.Errorf("cohort %q: %w", c.Name, err)
		}

		// Stone-Geary agents must start strictly above subsistence: the
		// preference core handles below-subsistence inventory gracefully
		// at evaluation time, but a scenario that begins there is a
		// configuration mistake, not an economy.
		if sg, ok := fn.(preference.StoneGeary); ok {
			lowA, lowB := c.Endowment.A, c.Endowment.B
			if s.Field != nil {
				lowA, lowB = s.Field.Min, s.Field.Min
			}
			if !sg.AboveSubsistence(lowA, lowB) {
				return fmt.Errorf("cohort %q: initial endowment (%g, %g) must lie strictly above subsistence (%g, %g)",
					c.Name, lowA, lowB, sg.GammaA, sg.GammaB)
			}
		}
	}
	return nil
}

// Build instantiates the scenario's agent population. Every agent receives
// its own preference instance, even within a cohort.
func (s *Scenario) Build() ([]*agents.Agent, error) {
	var pop []*agents.Agent
	nextID := agents.AgentID(1)

	var field *fieldSampler
	if s.Field != nil {
		field = newFieldSampler(s.Field, s.Seed)
	}

	for _, c := range s.Cohorts {
		for i := 0; i < c.Count; i++ {
			fn, err := preference.New(c.Preference)
			if err != nil {
				return nil, fmt.Errorf("cohort %q: %w", c.Name, err)
			}

			endowA, endowB := c.Endowment.A, c.Endowment.B
			if field != nil {
				endowA, endowB = field.sample(int(nextID))
			}

			pop = append(pop, &agents.Agent{
				ID:     nextID,
				Cohort: c.Name,
				A:      endowA,
				B:      endowB,
				Pref:   fn,
			})
			nextID++
		}
	}
	return pop, nil
}
