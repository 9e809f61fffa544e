package planner

import (
	"context"
	"fmt"
	"strings"

	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/goal"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/random"
)

var goalAdvice = []string{
	"**Strategy:** Focus on story progression that naturally unlocks regions relevant to this goal. Prioritize side quests that align with collectible hunting or specific combat challenges.",
	"**Next Steps:** Research specific in-game areas or missions known for progress towards this trophy. Consider if a specific character build or weapon set would be beneficial.",
	"**Efficiency Tip:** Combine this goal with others! For example, if it's a collectible goal, try to gather all items in an area before moving on to avoid backtracking.",
	"**Preparation:** Ensure your character or loadout is well-suited. You might need specific abilities, gear, or companion upgrades.",
}

type GoalStore interface {
	LoadGoals(ctx context.Context, username string) ([]goal.TrophyGoal, error)
}

type PlannerUsecase struct {
	goals GoalStore
	rnd   *random.Source
}

func NewPlannerUsecase(goals GoalStore, rnd *random.Source) *PlannerUsecase {
	return &PlannerUsecase{goals: goals, rnd: rnd}
}

// Roadmap renders a markdown plan covering every uncompleted goal.
func (p *PlannerUsecase) Roadmap(ctx context.Context, username, focus string) (string, error) {
	goals, err := p.goals.LoadGoals(ctx, username)
	if err != nil {
		return "", err
	}
	open := make([]goal.TrophyGoal, 0, len(goals))
	for _, g := range goals {
		if !g.IsCompleted {
			open = append(open, g)
		}
	}
	if len(open) == 0 {
		return "", errs.ErrNoOpenGoals
	}

	var sb strings.Builder
	sb.WriteString("## Your Personalized Trophy Roadmap 🗺️\n\n")
	sb.WriteString("Based on your current goals, here's an optimized path to help you achieve them. Remember, this is a guide, so feel free to adjust it to your playstyle!\n\n")
	if focus = strings.TrimSpace(focus); focus != "" {
		fmt.Fprintf(&sb, "**Roadmap Focus:** \"%s\"\n\n", focus)
	}

	sb.WriteString("### Active Goals to Tackle:\n")
	for i, g := range open {
		fmt.Fprintf(&sb, "*   **Goal %d:** \"%s\"\n", i+1, g.Goal)
		fmt.Fprintf(&sb, "    *   %s\n", goalAdvice[p.rnd.IntN(len(goalAdvice))])
	}

	sb.WriteString("\n### General Trophy Hunting Tips:\n")
	sb.WriteString("*   **Explore Thoroughly:** Before advancing major story points, always do a sweep of the current area for hidden items, side quests, and optional bosses.\n")
	sb.WriteString("*   **Check for Missables:** If a game is known for missable trophies, always consult a reliable guide *before* critical story junctures. TrophySeeker's guidance feature can help!\n")
	sb.WriteString("*   **Patience is Key:** Some trophies require grinding or multiple playthroughs. Break down large goals into smaller, manageable tasks.\n")
	sb.WriteString("*   **Community Wisdom:** Don't hesitate to check the Community features for tips on particularly tricky trophies or glitches.\n\n")

	if len(open) > 2 {
		sb.WriteString("Good luck, Hunter! May your trophy cabinet overflow with platinum! ✨")
	} else {
		sb.WriteString("You're close to achieving your goals! Keep up the great work! ✨")
	}
	return sb.String(), nil
}

// CrossGamePlan interleaves two or three catalog games into a weekly schedule.
// Games appear in catalog order regardless of the order requested.
func (p *PlannerUsecase) CrossGamePlan(gameIDs []string) (string, error) {
	selected := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		if _, ok := catalog.GameByID(id); !ok {
			return "", errs.ErrOptimizationGames
		}
		selected[id] = struct{}{}
	}
	if len(selected) < 2 || len(selected) > 3 {
		return "", errs.ErrOptimizationGames
	}

	names := make([]string, 0, len(selected))
	for _, g := range catalog.Games {
		if _, ok := selected[g.ID]; ok {
			names = append(names, g.Name)
		}
	}
	first, second := names[0], names[1]

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Trophy Efficiency Plan: %s ⚡\n\n", strings.Join(names, " + "))
	sb.WriteString("I've analyzed these titles to create the most efficient hunting sequence. By alternating focus, you'll maintain peak performance and avoid burnout.\n\n")

	sb.WriteString("### 🗓️ Optimized Weekly Schedule\n")
	sb.WriteString("| Day | Primary Focus | Backup (Relaxation) |\n")
	sb.WriteString("| :--- | :--- | :--- |\n")
	fmt.Fprintf(&sb, "| **Mon-Tue** | **%s** (Progression) | %s (Collectibles) |\n", first, second)
	sb.WriteString("| **Wed** | Skill Drill (Combat Challenges) | - |\n")
	fmt.Fprintf(&sb, "| **Thu-Fri** | **%s** (Main Story) | %s (Cleanup) |\n", second, first)
	sb.WriteString("| **Weekend** | Multi-Game Cleanup | Social Gaming |\n\n")

	sb.WriteString("### 🛠️ Shared Skill Matrix\n")
	fmt.Fprintf(&sb, "*   **Reflexes**: High overlap between these titles. Warm up with %s before tackling bosses in %s.\n", second, first)
	sb.WriteString("*   **Exploration**: Both games reward thoroughness. Use the same \"spiral search\" pattern for collectibles.\n\n")

	sb.WriteString("> [!TIP]\n")
	fmt.Fprintf(&sb, "> If you feel frustrated by a boss in **%s**, switch to **%s** for 45 minutes. The change in pace will refresh your cognitive focus!", first, second)
	return sb.String(), nil
}
