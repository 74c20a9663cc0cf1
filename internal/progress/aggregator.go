package progress

import (
	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/models"
)

// SectionProgress is one row of a per-section progress report.
type SectionProgress struct {
	SectionID string                 `json:"section_id"`
	Title     models.LocalizedString `json:"title"`
	Summary   models.ProgressSummary `json:"summary"`
}

// Compute derives the completion summary for the exercises in the given
// sections, or the whole tree when no sections are named. It is a pure read
// over the tree and the completed set; nothing is cached or stored.
func Compute(tree *content.Tree, completed map[string]bool, sectionIDs ...string) models.ProgressSummary {
	return summarize(tree.ExerciseIDs(sectionIDs...), completed)
}

// BySection reports every section separately, in display order.
func BySection(tree *content.Tree, completed map[string]bool) []SectionProgress {
	sections := tree.Sections()
	report := make([]SectionProgress, 0, len(sections))
	for _, section := range sections {
		report = append(report, SectionProgress{
			SectionID: section.ID,
			Title:     section.Title,
			Summary:   summarize(tree.ExerciseIDs(section.ID), completed),
		})
	}
	return report
}

func summarize(exerciseIDs []string, completed map[string]bool) models.ProgressSummary {
	summary := models.ProgressSummary{Total: len(exerciseIDs)}
	for _, id := range exerciseIDs {
		if completed[id] {
			summary.Completed++
		}
	}
	// An empty scope is 0%, never a division by zero.
	if summary.Total > 0 {
		summary.Percent = float64(summary.Completed) / float64(summary.Total) * 100
	}
	return summary
}
