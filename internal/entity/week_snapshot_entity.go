package entity

import (
	"github.com/google/uuid"
)

// WeekSnapshot bundles one week's authored content into an immutable unit.
// A turn works against a single snapshot for its whole duration so mid-turn
// content reloads can never produce a torn read.
type WeekSnapshot struct {
	Week      Week
	Questions []Question
	Templates []PromptTemplate
	Blocks    []ContentBlock
}

// Question returns the question with the given number within the week.
func (s *WeekSnapshot) Question(number int) (Question, bool) {
	for _, q := range s.Questions {
		if q.Number == number {
			return q, true
		}
	}
	return Question{}, false
}

// Template returns the template of the given kind for a question. For
// scenario_response kinds the scenario label must match too; pass an empty
// scenario for the other kinds.
func (s *WeekSnapshot) Template(questionId uuid.UUID, kind, scenario string) (PromptTemplate, bool) {
	for _, t := range s.Templates {
		if t.QuestionId == questionId && t.Kind == kind && t.Scenario == scenario {
			return t, true
		}
	}
	return PromptTemplate{}, false
}

// ScenarioLabels lists the scenario labels that have a response template
// authored for the question, in authored order.
func (s *WeekSnapshot) ScenarioLabels(questionId uuid.UUID) []string {
	var labels []string
	for _, t := range s.Templates {
		if t.QuestionId == questionId && t.Scenario != "" {
			labels = append(labels, t.Scenario)
		}
	}
	return labels
}

// Block returns the named content block's text.
func (s *WeekSnapshot) Block(name string) (string, bool) {
	for _, b := range s.Blocks {
		if b.Name == name {
			return b.Text, true
		}
	}
	return "", false
}

// QuestionCount reports how many questions the week holds.
func (s *WeekSnapshot) QuestionCount() int {
	return len(s.Questions)
}
