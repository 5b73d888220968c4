package ai

import (
	"context"
	"fmt"
	"strings"
)

const homeworkSystemPrompt = `You are a patient tutor. Solve the student's problem step by step.
Reply with a single JSON object of the form:
{"final_answer":"...","step_by_step":["..."],"tips":["..."]}
Each step explains one move. Tips are short study recommendations for similar problems.`

type HomeworkSolution struct {
	FinalAnswer string   `json:"final_answer"`
	Steps       []string `json:"step_by_step"`
	Tips        []string `json:"tips"`
}

func (a *Assistant) SolveHomework(ctx context.Context, question, topic, difficulty string) (*HomeworkSolution, error) {
	var user strings.Builder
	if topic != "" {
		fmt.Fprintf(&user, "Topic: %s\n", topic)
	}
	if difficulty != "" {
		fmt.Fprintf(&user, "Difficulty: %s\n", difficulty)
	}
	fmt.Fprintf(&user, "Question: %s", question)

	raw, err := a.complete(ctx, homeworkSystemPrompt, user.String())
	if err != nil {
		return nil, err
	}

	var solution HomeworkSolution
	if err := decodeJSON(raw, &solution); err != nil {
		return nil, err
	}
	solution.FinalAnswer = strings.TrimSpace(solution.FinalAnswer)
	solution.Steps = nonEmpty(solution.Steps)
	solution.Tips = nonEmpty(solution.Tips)
	if solution.FinalAnswer == "" && len(solution.Steps) == 0 {
		return nil, fmt.Errorf("%w: solution has no answer", ErrMalformedResponse)
	}
	return &solution, nil
}
