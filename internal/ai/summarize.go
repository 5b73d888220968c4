package ai

import (
	"context"
	"fmt"
	"strings"

	"studycompanion/internal/model"
)

const summarizeSystemPrompt = `You are a study assistant that summarizes course material for students.
Reply with a single JSON object of the form:
{"definitions":[{"term":"...","definition":"..."}],"bullets":["..."],"prompts":["..."]}
Rules:
- "definitions": every term that the text defines, with the definition quoted verbatim from the text.
- "bullets": concise key points in the order they appear.
- "prompts": review questions a student should be able to answer after reading.
Do not invent content that is not in the text.`

// SummarizeChunk summarizes one chunk of a document. pageLabel, when non-empty, is attached to
// definitions that do not carry a page of their own.
func (a *Assistant) SummarizeChunk(ctx context.Context, text, pageLabel string) (model.SummaryContent, error) {
	var user strings.Builder
	if pageLabel != "" {
		fmt.Fprintf(&user, "The following text starts around %s.\n\n", pageLabel)
	}
	user.WriteString(text)

	raw, err := a.complete(ctx, summarizeSystemPrompt, user.String())
	if err != nil {
		return model.SummaryContent{}, err
	}

	var parsed model.SummaryContent
	if err := decodeJSON(raw, &parsed); err != nil {
		return model.SummaryContent{}, err
	}
	return normalizeSummary(parsed, pageLabel), nil
}

func normalizeSummary(s model.SummaryContent, pageLabel string) model.SummaryContent {
	out := model.SummaryContent{
		Definitions: make([]model.Definition, 0, len(s.Definitions)),
		Bullets:     nonEmpty(s.Bullets),
		Prompts:     nonEmpty(s.Prompts),
	}
	for _, def := range s.Definitions {
		def.Term = strings.TrimSpace(def.Term)
		if def.Term == "" {
			continue
		}
		if def.Page == "" {
			def.Page = pageLabel
		}
		out.Definitions = append(out.Definitions, def)
	}
	return out
}
