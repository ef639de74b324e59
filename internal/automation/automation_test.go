package automation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lifesim/internal/codec"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/zoo"
)

func TestParseScenario_Defaults(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: demo
description: two runs
steps:
  - pattern: blinker
    generations: 4
  - name: soup
    soup:
      density: 0.5
      seed: 3
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Name != "demo" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", s)
	}

	first := s.Steps[0]
	if first.Name != "step-1" || first.Pattern != "blinker" || first.Generations != 4 {
		t.Errorf("step 1 = %+v", first)
	}
	if first.Width != config.DefaultWidth || !first.Toroidal {
		t.Error("step 1 lost defaults")
	}

	second := s.Steps[1]
	if second.Name != "soup" || second.Soup.Density != 0.5 || second.Soup.Seed != 3 {
		t.Errorf("step 2 = %+v", second)
	}
	if second.Generations != config.DefaultGenerations {
		t.Errorf("step 2 generations = %d", second.Generations)
	}
}

func TestParseScenario_Invalid(t *testing.T) {
	if _, err := ParseScenario([]byte("steps: [\n")); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := ParseScenario([]byte("steps:\n  - generations: lots\n")); err == nil {
		t.Error("expected decode error")
	}
}

func TestRunScenario_Chained(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "half.gol")
	second := filepath.Join(dir, "full.bgol")

	s, err := ParseScenario([]byte(fmt.Sprintf(`
name: blinker round trip
steps:
  - pattern: blinker
    width: 5
    height: 5
    toroidal: false
    generations: 1
    placement: {x: 1, y: 1}
    output: %q
  - input: %q
    width: 0
    height: 0
    toroidal: false
    generations: 1
    output: %q
`, first, first, second)))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var out bytes.Buffer
	results, err := RunScenario(context.Background(), s, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	want := grid.New(5, 5)
	if err := want.Merge(zoo.Blinker(), 1, 1, false); err != nil {
		t.Fatalf("merge: %v", err)
	}
	got, err := codec.Load(second)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("two blinker steps should restore the start:\n%s", got)
	}
	if !strings.Contains(out.String(), "running step 2/2") {
		t.Errorf("missing progress output: %q", out.String())
	}
}

func TestRunScenario_StopsOnError(t *testing.T) {
	s := &Scenario{Steps: []Step{
		{Name: "ok", Config: *config.DefaultConfig()},
		{Name: "bad", Config: config.Config{Pattern: "no-such-pattern", Generations: 1}},
		{Name: "never", Config: *config.DefaultConfig()},
	}}

	var out bytes.Buffer
	results, err := RunScenario(context.Background(), s, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "step 2") {
		t.Errorf("error does not name the step: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result before the failure, got %d", len(results))
	}
}

func TestRunScenario_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scenario{Steps: []Step{{Name: "one", Config: *config.DefaultConfig()}}}
	_, err := RunScenario(ctx, s, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
