package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trophyseeker/internal/domain/goal"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/random"
)

type goalList []goal.TrophyGoal

func (g goalList) LoadGoals(context.Context, string) ([]goal.TrophyGoal, error) {
	return g, nil
}

func TestRoadmapRequiresOpenGoals(t *testing.T) {
	p := NewPlannerUsecase(goalList{{ID: "g1", Goal: "done", IsCompleted: true}}, random.NewSeeded(1))
	if _, err := p.Roadmap(context.Background(), "alice", ""); !errors.Is(err, errs.ErrNoOpenGoals) {
		t.Errorf("got %v, want ErrNoOpenGoals", err)
	}
}

func TestRoadmap(t *testing.T) {
	ctx := context.Background()
	few := goalList{
		{ID: "g1", Goal: "Platinum Elden Ring"},
		{ID: "g2", Goal: "Already done", IsCompleted: true},
	}
	p := NewPlannerUsecase(few, random.NewSeeded(1))

	md, err := p.Roadmap(ctx, "alice", "  boss fights ")
	if err != nil {
		t.Fatalf("Roadmap failed: %v", err)
	}
	if !strings.Contains(md, `**Goal 1:** "Platinum Elden Ring"`) {
		t.Errorf("missing open goal:\n%s", md)
	}
	if strings.Contains(md, "Already done") {
		t.Errorf("completed goal listed:\n%s", md)
	}
	if !strings.Contains(md, `**Roadmap Focus:** "boss fights"`) {
		t.Errorf("missing focus:\n%s", md)
	}
	if !strings.HasSuffix(md, "You're close to achieving your goals! Keep up the great work! ✨") {
		t.Errorf("wrong closing line:\n%s", md)
	}

	many := goalList{{ID: "a", Goal: "a"}, {ID: "b", Goal: "b"}, {ID: "c", Goal: "c"}}
	md, err = NewPlannerUsecase(many, random.NewSeeded(1)).Roadmap(ctx, "alice", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(md, "May your trophy cabinet overflow with platinum! ✨") {
		t.Errorf("wrong closing line for many goals:\n%s", md)
	}
	if strings.Contains(md, "Roadmap Focus") {
		t.Errorf("focus rendered without one:\n%s", md)
	}
}

func TestRoadmapKeepsGoalTextVerbatim(t *testing.T) {
	p := NewPlannerUsecase(goalList{{ID: "g1", Goal: `Beat "Margit" in Elden Ring`}}, random.NewSeeded(1))

	md, err := p.Roadmap(context.Background(), "alice", `the "hard" ones`)
	if err != nil {
		t.Fatalf("Roadmap failed: %v", err)
	}
	if !strings.Contains(md, `**Goal 1:** "Beat "Margit" in Elden Ring"`) {
		t.Errorf("goal text was escaped:\n%s", md)
	}
	if !strings.Contains(md, `**Roadmap Focus:** "the "hard" ones"`) {
		t.Errorf("focus text was escaped:\n%s", md)
	}
	if strings.Contains(md, `\"`) {
		t.Errorf("output contains escaped quotes:\n%s", md)
	}
}

func TestCrossGamePlan(t *testing.T) {
	p := NewPlannerUsecase(goalList{}, random.NewSeeded(1))

	invalid := [][]string{
		nil,
		{"er"},
		{"er", "er"},
		{"er", "hfw", "gof", "spm"},
		{"er", "zelda"},
	}
	for _, ids := range invalid {
		if _, err := p.CrossGamePlan(ids); !errors.Is(err, errs.ErrOptimizationGames) {
			t.Errorf("CrossGamePlan(%v): got %v, want ErrOptimizationGames", ids, err)
		}
	}

	md, err := p.CrossGamePlan([]string{"er", "hfw"})
	if err != nil {
		t.Fatalf("CrossGamePlan failed: %v", err)
	}
	if !strings.HasPrefix(md, "## Trophy Efficiency Plan: Horizon Forbidden West + Elden Ring ⚡") {
		t.Errorf("title:\n%s", md)
	}
	if !strings.Contains(md, "| **Mon-Tue** | **Horizon Forbidden West** (Progression) | Elden Ring (Collectibles) |") {
		t.Errorf("schedule:\n%s", md)
	}
}
