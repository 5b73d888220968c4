package summarymerge

import (
	"slices"
	"strings"

	"studycompanion/internal/model"
)

// Merge combines per-chunk summaries, given in chunk order, into one summary.
//
// Definitions keep the first occurrence of each term, bullets are de-duplicated in first-seen
// order and review prompts are concatenated. Overlapping chunks re-summarize the same words, so
// repeated terms and bullets are expected. A single summary is returned as is.
func Merge(parts []model.SummaryContent) model.SummaryContent {
	switch len(parts) {
	case 0:
		return model.SummaryContent{
			Definitions: []model.Definition{},
			Bullets:     []string{},
			Prompts:     []string{},
		}
	case 1:
		return clone(parts[0])
	}

	merged := model.SummaryContent{
		Definitions: []model.Definition{},
		Bullets:     []string{},
		Prompts:     []string{},
	}
	seenTerms := make(map[string]struct{})
	seenBullets := make(map[string]struct{})

	for _, part := range parts {
		for _, def := range part.Definitions {
			term := strings.TrimSpace(def.Term)
			if term == "" {
				continue
			}
			if _, ok := seenTerms[term]; ok {
				continue
			}
			seenTerms[term] = struct{}{}
			merged.Definitions = append(merged.Definitions, def)
		}
		for _, bullet := range part.Bullets {
			key := strings.TrimSpace(bullet)
			if key == "" {
				continue
			}
			if _, ok := seenBullets[key]; ok {
				continue
			}
			seenBullets[key] = struct{}{}
			merged.Bullets = append(merged.Bullets, bullet)
		}
		for _, prompt := range part.Prompts {
			if strings.TrimSpace(prompt) == "" {
				continue
			}
			merged.Prompts = append(merged.Prompts, prompt)
		}
	}
	return merged
}

func clone(s model.SummaryContent) model.SummaryContent {
	return model.SummaryContent{
		Definitions: slices.Clone(s.Definitions),
		Bullets:     slices.Clone(s.Bullets),
		Prompts:     slices.Clone(s.Prompts),
	}
}
