package entity

import (
	"github.com/google/uuid"
)

// PromptTemplate is operator-authored prompt text for one question. Scenario
// is set only for scenario_response-kind templates and names the label the
// template answers to.
type PromptTemplate struct {
	Id         uuid.UUID
	QuestionId uuid.UUID
	Kind       string
	Scenario   string
	Text       string
}
