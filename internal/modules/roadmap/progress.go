package roadmap

import (
	"math"
	"strings"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
)

// ApplyStatus sets the status of the first item whose name matches itemName
// case-insensitively. Skill stages are searched before project stages, each in
// Beginner..Main Projects order, and at most one item changes. It reports whether an
// item matched.
func ApplyStatus(rm *domain.Roadmap, itemName string, status domain.Status) (domain.Stage, bool) {
	want := strings.ToLower(strings.TrimSpace(itemName))
	for _, group := range [][]domain.Stage{domain.SkillStages, domain.ProjectStages} {
		for _, stage := range group {
			items := rm.Items(stage)
			for i := range items {
				if strings.ToLower(strings.TrimSpace(items[i].Name)) == want {
					items[i].Status = status
					return stage, true
				}
			}
		}
	}
	return "", false
}

// Summarize computes per-stage and overall completion. Percentages are rounded to two
// decimals and are 0 for empty stages.
func Summarize(rm domain.Roadmap) domain.ProgressSummary {
	out := domain.ProgressSummary{Summary: make(map[domain.Stage]domain.StageProgress, len(domain.Stages))}
	for _, stage := range domain.Stages {
		items := rm.Items(stage)
		completed := 0
		for _, it := range items {
			if it.Status == domain.StatusCompleted {
				completed++
			}
		}
		out.Summary[stage] = domain.StageProgress{
			Count:          len(items),
			CompletedCount: completed,
			Percent:        percent(completed, len(items)),
		}
		out.TotalItems += len(items)
		out.TotalCompleted += completed
	}
	out.OverallPercent = percent(out.TotalCompleted, out.TotalItems)
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
