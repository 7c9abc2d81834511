package interview

import (
	"sort"
	"strings"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Compile turns a bot's question groups into a flat, ordered script.
//
// Groups are kept when their category matches one of researchFocus (case-insensitive,
// surrounding whitespace ignored); an empty focus keeps every group. Kept groups are
// ordered high, medium, low priority, preserving authored order inside a priority,
// and questions keep their authored order. The result depends only on the inputs.
func Compile(groups []entities.QuestionGroup, researchFocus []string) []entities.CompiledQuestion {
	focus := normalizeFocus(researchFocus)

	selected := make([]entities.QuestionGroup, 0, len(groups))
	for _, g := range groups {
		if len(focus) > 0 {
			if _, ok := focus[normalizeCategory(g.Category)]; !ok {
				continue
			}
		}
		selected = append(selected, g)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Priority.Rank() < selected[j].Priority.Rank()
	})

	script := make([]entities.CompiledQuestion, 0)
	for _, g := range selected {
		for _, text := range g.Questions {
			script = append(script, entities.CompiledQuestion{
				Index:            len(script),
				Category:         g.Category,
				Text:             text,
				Priority:         g.Priority,
				SourceConditions: append([]string(nil), g.AdaptiveConditions...),
			})
		}
	}

	return script
}

func normalizeFocus(focus []string) map[string]struct{} {
	set := make(map[string]struct{}, len(focus))
	for _, f := range focus {
		if key := normalizeCategory(f); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
