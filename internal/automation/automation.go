// Package automation runs scripted sequences of simulations from YAML.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/codec"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/world"
)

// Scenario defines a scripted simulation sequence. A step may read the grid
// file an earlier step wrote.
type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

// Step is one run. Fields left out of the YAML keep their defaults.
type Step struct {
	Name          string `yaml:"name"`
	config.Config `yaml:",inline"`
}

type rawScenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []yaml.Node `yaml:"steps"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw rawScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	scenario := &Scenario{
		Name:        raw.Name,
		Description: raw.Description,
		Steps:       make([]Step, 0, len(raw.Steps)),
	}
	for i := range raw.Steps {
		step := Step{Config: *config.DefaultConfig()}
		if err := raw.Steps[i].Decode(&step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Name == "" {
			step.Name = fmt.Sprintf("step-%d", i+1)
		}
		scenario.Steps = append(scenario.Steps, step)
	}
	return scenario, nil
}

// RunScenario executes all steps in order, writing progress to out. It stops
// at the first failing step and returns the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, out io.Writer) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Name)

		initial, err := step.BuildGrid()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s := sim.New(world.FromGrid(initial))
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, sim.Config{
			Generations: step.Generations,
			Toroidal:    step.Toroidal,
			StopOnCycle: step.StopOnCycle,
		})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if step.Output != "" {
			if err := codec.Save(step.Output, result.Final); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			fmt.Fprintf(out, "  wrote %s\n", step.Output)
		}
		fmt.Fprintf(out, "  %d generations, population %d\n", result.Generations, result.Final.AliveCells())

		results = append(results, result)
	}

	return results, nil
}
