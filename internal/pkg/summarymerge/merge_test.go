package summarymerge

import (
	"reflect"
	"testing"

	"studycompanion/internal/model"
)

func TestMerge_SingleSummaryUnchanged(t *testing.T) {
	in := model.SummaryContent{
		Definitions: []model.Definition{
			{Term: "Osmosis", Definition: "\"the movement of water across a membrane\"", Page: "p. 1"},
			{Term: "Osmosis", Definition: "repeated on purpose"},
		},
		Bullets: []string{"Cells need water", "Cells need water"},
		Prompts: []string{"What drives osmosis?"},
	}

	got := Merge([]model.SummaryContent{in})

	if !reflect.DeepEqual(got, in) {
		t.Fatalf("single summary changed:\n got %+v\nwant %+v", got, in)
	}
	got.Bullets[0] = "mutated"
	if in.Bullets[0] != "Cells need water" {
		t.Errorf("Merge returned a summary sharing memory with its input")
	}
}

func TestMerge_DeduplicatesOverlapRepeats(t *testing.T) {
	parts := []model.SummaryContent{
		{
			Definitions: []model.Definition{
				{Term: "Mitosis", Definition: "cell division producing two identical cells", Page: "p. 1"},
				{Term: "Meiosis", Definition: "division producing gametes", Page: "p. 1"},
			},
			Bullets: []string{"DNA replicates before division", "Chromosomes condense"},
			Prompts: []string{"Compare mitosis and meiosis."},
		},
		{
			Definitions: []model.Definition{
				{Term: "Meiosis", Definition: "division producing gametes", Page: "p. 2"},
				{Term: "Cytokinesis", Definition: "division of the cytoplasm", Page: "p. 2"},
			},
			Bullets: []string{"Chromosomes condense", "Spindle fibres attach"},
			Prompts: []string{"What happens in anaphase?"},
		},
		{
			Definitions: []model.Definition{{Term: "Mitosis", Definition: "a later paraphrase"}},
			Bullets:     []string{"  DNA replicates before division  "},
			Prompts:     []string{"Compare mitosis and meiosis."},
		},
	}

	got := Merge(parts)

	terms := make(map[string]int)
	for _, d := range got.Definitions {
		terms[d.Term]++
	}
	for term, n := range terms {
		if n != 1 {
			t.Errorf("term %q appears %d times", term, n)
		}
	}
	wantTerms := []string{"Mitosis", "Meiosis", "Cytokinesis"}
	if len(got.Definitions) != len(wantTerms) {
		t.Fatalf("expected %d definitions, got %+v", len(wantTerms), got.Definitions)
	}
	for i, term := range wantTerms {
		if got.Definitions[i].Term != term {
			t.Errorf("definition %d: got %q want %q", i, got.Definitions[i].Term, term)
		}
	}
	if got.Definitions[0].Definition != "cell division producing two identical cells" {
		t.Errorf("first occurrence of a term should win, got %q", got.Definitions[0].Definition)
	}

	wantBullets := []string{"DNA replicates before division", "Chromosomes condense", "Spindle fibres attach"}
	if !reflect.DeepEqual(got.Bullets, wantBullets) {
		t.Errorf("bullets: got %q want %q", got.Bullets, wantBullets)
	}

	wantPrompts := []string{"Compare mitosis and meiosis.", "What happens in anaphase?", "Compare mitosis and meiosis."}
	if !reflect.DeepEqual(got.Prompts, wantPrompts) {
		t.Errorf("prompts: got %q want %q", got.Prompts, wantPrompts)
	}
}

func TestMerge_Empty(t *testing.T) {
	got := Merge(nil)
	if got.Definitions == nil || got.Bullets == nil || got.Prompts == nil {
		t.Fatalf("expected empty, non-nil slices, got %+v", got)
	}
	if len(got.Definitions)+len(got.Bullets)+len(got.Prompts) != 0 {
		t.Errorf("expected empty summary, got %+v", got)
	}
}
